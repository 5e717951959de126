package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"mini-store/internal/config"
	"mini-store/internal/database"
	"mini-store/internal/model"
	"mini-store/internal/repository"

	"github.com/shopspring/decimal"
)

// Seeds the catalogue with sample products for local development.
// Usage: go run scripts/seed_products.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := repository.NewProductRepository(pool, logger)

	products := []model.Product{
		{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("100000.00"), Stock: 25},
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("45000.00"), Stock: 40},
		{Name: "27-inch Monitor", Price: decimal.RequireFromString("350000.00"), Stock: 10},
		{Name: "USB-C Dock", Price: decimal.RequireFromString("250000.00"), Stock: 15},
		{Name: "Laptop Stand", Price: decimal.RequireFromString("80000.00"), Stock: 0},
		{Name: "Noise Cancelling Headphones", Price: decimal.RequireFromString("420000.00"), Stock: 12},
		{Name: "Webcam", Price: decimal.RequireFromString("60000.00"), Stock: 30},
		{Name: "Monitor Arm", Price: decimal.RequireFromString("120000.00"), Stock: 20},
	}

	for _, p := range products {
		created, err := repo.Create(ctx, &p)
		if err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.Name, err)
		}
		fmt.Printf("Seeded product %d: %s (price %s, stock %d)\n",
			created.ID, created.Name, created.Price, created.Stock)
	}

	fmt.Printf("\nSeeded %d products successfully!\n", len(products))
}
