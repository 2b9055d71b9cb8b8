package geometry

import (
	"math/rand"
	"sync"
)

// Projection seeds come from a single package source behind a mutex so
// concurrent queries stay race-free and Seed makes tests reproducible.
// Different seeds must converge to the same geometric answer within
// tolerance; the seed only picks the Newton starting point.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(1))
)

// Seed re-seeds the source used for projection starting points.
func Seed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewSource(seed))
}

func randFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}
