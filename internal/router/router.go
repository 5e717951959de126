package router

import (
	"net/http"
	"strings"

	"mini-store/internal/auth"
	"mini-store/internal/handler"
	"mini-store/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	invoiceHandler *handler.InvoiceHandler,
	paymentHandler *handler.PaymentHandler,
	verifier auth.Verifier,
	registry *prometheus.Registry,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Metrics endpoint (no authentication required)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Collection routes
		if r.URL.Path == "/api/products" || r.URL.Path == "/api/products/" {
			switch r.Method {
			case http.MethodGet:
				productHandler.List(w, r)
			case http.MethodPost:
				productHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Item routes
		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodPut:
			productHandler.Update(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && (r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/") {
			orderHandler.Create(w, r)
			return
		}

		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/status") {
			orderHandler.UpdateStatus(w, r)
			return
		}

		if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Invoice handler function
	invoiceRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/invoices" || r.URL.Path == "/api/invoices/" {
			if r.Method == http.MethodGet {
				invoiceHandler.List(w, r)
				return
			}
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		switch r.Method {
		case http.MethodPost:
			invoiceHandler.Generate(w, r)
		case http.MethodGet:
			invoiceHandler.GetByID(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	mux.HandleFunc("/api/invoices", invoiceRouteHandler)
	mux.HandleFunc("/api/invoices/", invoiceRouteHandler)

	// Payment route
	mux.HandleFunc("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		paymentHandler.Process(w, r)
	})

	metrics := middleware.NewHTTPMetrics(registry)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> Metrics -> CORS -> BearerAuth
	var h http.Handler = mux
	h = middleware.BearerAuth(verifier, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Metrics(metrics, routePattern)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// routePattern collapses parameterised paths into their route pattern so
// metric labels stay low-cardinality.
func routePattern(r *http.Request) string {
	path := r.URL.Path
	switch {
	case path == "/health" || path == "/metrics" || path == "/api/payments":
		return path
	case strings.HasPrefix(path, "/api/products/"):
		return "/api/products/{id}"
	case strings.HasPrefix(path, "/api/orders/") && strings.HasSuffix(path, "/status"):
		return "/api/orders/{id}/status"
	case strings.HasPrefix(path, "/api/orders/"):
		return "/api/orders/{id}"
	case strings.HasPrefix(path, "/api/invoices/"):
		return "/api/invoices/{id}"
	default:
		return strings.TrimSuffix(path, "/")
	}
}
