package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/amzcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ amzcrawl.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements amzcrawl.SnapshotService using SQLite.
type SnapshotService struct {
	db  *DB
	now func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db, now: time.Now}
}

// hashSnapshot computes the xxHash of the observable fields of s.
// Identity and timestamp fields are excluded so repeated observations of
// an unchanged listing hash the same.
func hashSnapshot(s *amzcrawl.Snapshot) string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteByte(0)
	writeOptFloat(&b, s.Price)
	writeOptFloat(&b, s.OriginalPrice)
	b.WriteString(s.Currency)
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(s.PriceHidden))
	b.WriteByte(0)
	writeOptFloat(&b, s.Stars)
	b.WriteString(strconv.Itoa(s.ReviewCount))
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(s.InStock))

	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64String(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeOptFloat(b *strings.Builder, v *float64) {
	if v != nil {
		b.WriteString(strconv.FormatFloat(*v, 'f', -1, 64))
	}
	b.WriteByte(0)
}

// CreateSnapshot stores s with a generated ID unless the latest snapshot
// for the same ASIN and region has the same content hash.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *amzcrawl.Snapshot) (bool, error) {
	if err := snap.Validate(); err != nil {
		return false, err
	}

	snap.ContentHash = hashSnapshot(snap)

	var latest string
	err := s.db.QueryRowContext(ctx, `
		SELECT content_hash FROM snapshots
		WHERE asin = ? AND region = ?
		ORDER BY observed_at DESC, rowid DESC
		LIMIT 1
	`, snap.ASIN, snap.Region).Scan(&latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, err
	case latest == snap.ContentHash:
		return false, nil
	}

	snap.ID = uuid.New().String()
	if snap.ObservedAt.IsZero() {
		snap.ObservedAt = s.now()
	}
	snap.ObservedAt = snap.ObservedAt.UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, asin, region, title, price, original_price, currency, price_hidden, stars, review_count, in_stock, content_hash, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.ASIN, snap.Region, snap.Title,
		nullFloat(snap.Price), nullFloat(snap.OriginalPrice), snap.Currency, snap.PriceHidden,
		nullFloat(snap.Stars), snap.ReviewCount, snap.InStock, snap.ContentHash,
		formatTime(snap.ObservedAt))
	if err != nil {
		return false, err
	}

	return true, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter amzcrawl.SnapshotFilter) ([]*amzcrawl.Snapshot, error) {
	q := newSelectQuery(`SELECT id, asin, region, title, price, original_price, currency, price_hidden, stars, review_count, in_stock, content_hash, observed_at FROM snapshots`)
	if filter.ASIN != nil {
		q.where("asin = ?", *filter.ASIN)
	}
	if filter.Region != nil {
		q.where("region = ?", *filter.Region)
	}
	q.orderBy("observed_at DESC, rowid DESC")
	q.page(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*amzcrawl.Snapshot
	for rows.Next() {
		var snap amzcrawl.Snapshot
		var price, original, stars sql.NullFloat64
		var observedAt string

		if err := rows.Scan(&snap.ID, &snap.ASIN, &snap.Region, &snap.Title,
			&price, &original, &snap.Currency, &snap.PriceHidden,
			&stars, &snap.ReviewCount, &snap.InStock, &snap.ContentHash, &observedAt); err != nil {
			return nil, err
		}

		snap.Price = floatPtr(price)
		snap.OriginalPrice = floatPtr(original)
		snap.Stars = floatPtr(stars)
		if snap.ObservedAt, err = parseTime(observedAt, "observed_at"); err != nil {
			return nil, err
		}

		snaps = append(snaps, &snap)
	}

	return snaps, rows.Err()
}

// DeleteSnapshots permanently removes every snapshot for asin.
func (s *SnapshotService) DeleteSnapshots(ctx context.Context, asin string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE asin = ?", asin)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return amzcrawl.Errorf(amzcrawl.ENOTFOUND, "no snapshots for %s", asin)
	}

	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
