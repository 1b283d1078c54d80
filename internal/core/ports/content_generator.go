package ports

import (
	"context"

	"donations/internal/core/domain/model/content"
)

// ContentRequest is everything the generator gets to write about a donation.
type ContentRequest struct {
	Type       content.Type
	Items      []string
	DonorName  string
	CenterName string
	// Date is the donation date, already formatted for display.
	Date string
}

// ContentGenerator produces free text for a donation. The core stores the
// text as returned and never interprets it.
type ContentGenerator interface {
	Generate(ctx context.Context, req ContentRequest) (string, error)
}
