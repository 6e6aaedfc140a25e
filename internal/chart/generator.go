package chart

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/port"
)

// Profile holds the parameters of the mock revenue and expense series.
// Each day draws base + r*spread, then applies the weekend factor and a
// seasonal step of (month0 % 3) * step.
type Profile struct {
	RevenueBase       float64
	RevenueSpread     float64
	RevenueWeekend    float64
	RevenueSeasonStep float64

	ExpenseBase       float64
	ExpenseSpread     float64
	ExpenseWeekend    float64
	ExpenseSeasonStep float64
}

// DefaultProfile yields revenue in 5000-9000 and expenses in 3000-6000
// before weekend and seasonal adjustments.
var DefaultProfile = Profile{
	RevenueBase:       5000,
	RevenueSpread:     4000,
	RevenueWeekend:    0.7,
	RevenueSeasonStep: 0.1,

	ExpenseBase:       3000,
	ExpenseSpread:     3000,
	ExpenseWeekend:    1.2,
	ExpenseSeasonStep: 0.05,
}

// Generator produces mock daily values from a random source.
type Generator struct {
	src     port.RandomSource
	profile Profile
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(src port.RandomSource, profile Profile) *Generator {
	return &Generator{src: src, profile: profile}
}

// Revenue returns the rounded mock revenue for day. Each call draws once from the source.
func (g *Generator) Revenue(day time.Time) float64 {
	base := g.profile.RevenueBase + g.src.Float64()*g.profile.RevenueSpread
	return math.Round(base * weekendFactor(day, g.profile.RevenueWeekend) * seasonFactor(day, g.profile.RevenueSeasonStep))
}

// Expenses returns the rounded mock expenses for day. Each call draws once from the source.
func (g *Generator) Expenses(day time.Time) float64 {
	base := g.profile.ExpenseBase + g.src.Float64()*g.profile.ExpenseSpread
	return math.Round(base * weekendFactor(day, g.profile.ExpenseWeekend) * seasonFactor(day, g.profile.ExpenseSeasonStep))
}

func weekendFactor(day time.Time, factor float64) float64 {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return factor
	}
	return 1
}

func seasonFactor(day time.Time, step float64) float64 {
	month0 := int(day.Month()) - 1
	return 1 + float64(month0%3)*step
}

// LockedSource is a goroutine-safe PCG source.
type LockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedSource seeds a PCG generator. A zero seed uses the current time.
func NewLockedSource(seed uint64) *LockedSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
