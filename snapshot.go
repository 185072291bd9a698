package amzcrawl

import (
	"context"
	"time"
)

// Snapshot is a point-in-time observation of a product's price and rating.
type Snapshot struct {
	ID            string    `json:"id"`
	ASIN          string    `json:"asin"`
	Region        string    `json:"region"`
	Title         string    `json:"title"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	PriceHidden   bool      `json:"priceHidden"`
	Stars         *float64  `json:"stars,omitempty"`
	ReviewCount   int       `json:"reviewCount"`
	InStock       bool      `json:"inStock"`
	ContentHash   string    `json:"contentHash"`
	ObservedAt    time.Time `json:"observedAt"`
}

// NewSnapshot captures the observable state of p in region.
func NewSnapshot(p *Product, region string) *Snapshot {
	s := &Snapshot{
		ASIN:    p.ASIN,
		Region:  region,
		Title:   p.Title,
		InStock: p.InStock,
	}
	if p.Price != nil {
		s.Currency = p.Price.Currency
		s.PriceHidden = p.Price.IsHidden
		if !p.Price.IsHidden {
			current := p.Price.Current
			s.Price = &current
		}
		if p.Price.Original != nil {
			original := *p.Price.Original
			s.OriginalPrice = &original
		}
	}
	if p.Rating != nil {
		stars := p.Rating.Stars
		s.Stars = &stars
		s.ReviewCount = p.Rating.ReviewCount
	}
	return s
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.ASIN == "" {
		return Errorf(EINVALID, "snapshot ASIN required")
	}
	if s.Region == "" {
		return Errorf(EINVALID, "snapshot region required")
	}
	return nil
}

// SnapshotService stores price history.
type SnapshotService interface {
	// CreateSnapshot stores s unless the latest snapshot for the same ASIN
	// and region has identical content. Reports whether a row was written.
	CreateSnapshot(ctx context.Context, s *Snapshot) (bool, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshots removes every snapshot for asin.
	// Returns ENOTFOUND if there are none.
	DeleteSnapshots(ctx context.Context, asin string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ASIN   *string `json:"asin"`
	Region *string `json:"region"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
