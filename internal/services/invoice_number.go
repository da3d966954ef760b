package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"ultimedia/internal/common"
	"ultimedia/internal/repositories"
)

// InvoiceNumber is a minted identifier. Degraded marks numbers produced by
// the timestamp fallback, which are not guaranteed unique.
type InvoiceNumber struct {
	Value    string
	Degraded bool
}

// InvoiceNumberGenerator mints ULT-<year>-<5-digit sequence> identifiers.
// The database counter is the source of truth; the fallback only runs when
// explicitly enabled.
type InvoiceNumberGenerator interface {
	Next(ctx context.Context, year int) (InvoiceNumber, error)
}

type invoiceNumberGenerator struct {
	invoiceRepo   repositories.InvoiceRepository
	allowFallback bool
	now           func() time.Time
}

func NewInvoiceNumberGenerator(invoiceRepo repositories.InvoiceRepository, allowFallback bool) InvoiceNumberGenerator {
	return &invoiceNumberGenerator{
		invoiceRepo:   invoiceRepo,
		allowFallback: allowFallback,
		now:           time.Now,
	}
}

func (g *invoiceNumberGenerator) Next(ctx context.Context, year int) (InvoiceNumber, error) {
	sequence, err := g.invoiceRepo.NextInvoiceSequence(ctx, year)
	if err == nil {
		return InvoiceNumber{Value: fmt.Sprintf("ULT-%d-%05d", year, sequence)}, nil
	}

	if !g.allowFallback {
		return InvoiceNumber{}, common.GenerationUnavailable("invoice numbering is unavailable", err)
	}

	// Degraded mode: last five digits of unix millis. Collisions are
	// possible, which is why this path is opt-in.
	millis := g.now().UnixMilli()
	suffix := millis % 100000
	number := InvoiceNumber{
		Value:    fmt.Sprintf("ULT-%d-%05d", year, suffix),
		Degraded: true,
	}
	log.Printf("WARN: invoice sequence unavailable, minted degraded number %s: %v", number.Value, err)
	return number, nil
}
