package archive

import (
	"context"

	"mini-store/internal/model"
)

// Archiver stores a durable copy of each issued invoice. Archiving is best
// effort: callers log failures but never fail invoice issuance over them.
type Archiver interface {
	Archive(ctx context.Context, invoice *model.Invoice) error
}

// nopArchiver discards invoices. Used when archiving is disabled.
type nopArchiver struct{}

// NewNopArchiver creates an archiver that does nothing.
func NewNopArchiver() Archiver {
	return nopArchiver{}
}

func (nopArchiver) Archive(ctx context.Context, invoice *model.Invoice) error {
	return nil
}
