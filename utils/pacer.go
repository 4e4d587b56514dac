package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Pacer spaces out calls to a rate-limited upstream. Each Wait blocks for
// a duration drawn uniformly from [min, max].
type Pacer struct {
	min time.Duration
	max time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	sleep func(time.Duration)
}

// NewPacer creates a Pacer. A max below min is raised to min, which gives a
// fixed pause.
func NewPacer(minMs, maxMs int) *Pacer {
	if minMs < 0 {
		minMs = 0
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	return &Pacer{
		min:   time.Duration(minMs) * time.Millisecond,
		max:   time.Duration(maxMs) * time.Millisecond,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}
}

// Next returns the next pause without sleeping.
func (p *Pacer) Next() time.Duration {
	if p.max == p.min {
		return p.min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + time.Duration(p.rng.Int63n(int64(p.max-p.min)+1))
}

// Wait sleeps for the next pause and returns how long it slept.
func (p *Pacer) Wait() time.Duration {
	d := p.Next()
	if d > 0 {
		p.sleep(d)
	}
	return d
}
