package report

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// CacheKey identifies a computed report. Two requests with equal keys
// produce equal reports as long as the parish ledger is unchanged.
type CacheKey struct {
	ParishID      uuid.UUID
	Report        string
	Period        string
	Customization string
	Params        []string
}

// Suffix renders every part of the key except the parish.
func (k CacheKey) Suffix() string {
	parts := append([]string{k.Report, k.Period, k.Customization}, k.Params...)
	return strings.Join(parts, ":")
}

// Cache stores computed reports. Entries are dropped per parish whenever
// its ledger changes; a miss always falls back to recomputation.
type Cache interface {
	Get(ctx context.Context, key CacheKey, dest any) (bool, error)
	Set(ctx context.Context, key CacheKey, value any) error
	InvalidateParish(ctx context.Context, parishID uuid.UUID) error
}
