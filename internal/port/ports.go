// Package port defines the interfaces (ports) the chart service depends on.
// Following hexagonal architecture, these ports keep the wall clock, the
// random source and the cache swappable in tests.
package port

import (
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// Clock supplies the reference instant for date range calculations.
type Clock interface {
	Now() time.Time
}

// RandomSource supplies uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// ChartBuilder builds a chart for a period at a reference instant.
type ChartBuilder interface {
	CreateAt(period domain.TimePeriod, now time.Time) *domain.ChartConfig
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
