package provider

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/truecost/mortgage-service/internal/domain/port"
)

var _ port.RateSource = (*SimulatedRateSource)(nil)

// Bounds of the simulated market rate, in percent.
const (
	SimulatedRateMin = 6.1
	SimulatedRateMax = 7.2
)

// SimulatedRateSource draws a rate uniformly from [6.1, 7.2] rounded to two
// decimals. Safe for concurrent use.
type SimulatedRateSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedRateSource creates a source. A zero seed draws one from the
// clock, so only non-zero seeds give a repeatable sequence.
func NewSimulatedRateSource(seed int64) *SimulatedRateSource {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return &SimulatedRateSource{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// CurrentRate returns the next simulated rate.
func (s *SimulatedRateSource) CurrentRate(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	rate := SimulatedRateMin + f*(SimulatedRateMax-SimulatedRateMin)
	return decimal.NewFromFloat(rate).Round(2), nil
}

// FixedRateSource always reports the same rate.
type FixedRateSource struct {
	Rate decimal.Decimal
}

// CurrentRate returns the fixed rate.
func (f FixedRateSource) CurrentRate(_ context.Context) (decimal.Decimal, error) {
	return f.Rate, nil
}
