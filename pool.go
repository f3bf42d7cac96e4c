package html2md

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one converter is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each in-flight conversion
	// holds a full document tree plus extracted image bytes in memory.
	MaxPoolSize = 16
)

// DefaultPoolSize derives a pool size from the CPU count, clamped to the
// pool bounds.
func DefaultPoolSize() int {
	n := runtime.NumCPU()
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// ConverterPool bounds the number of conversions running at once.
// Converters are created lazily on first acquire, all from the same option
// set. A single Converter is already safe for concurrent use; the pool
// exists to cap peak memory during batch work.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
}

// NewConverterPool creates a pool with capacity for n Converter instances,
// each configured with opts. Converters are created when acquired, not at
// pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if the pool has not
// reached capacity. Blocks if all converters are in use. Construction
// errors (e.g. incomplete blob configuration) surface here for the first
// converters; subsequent acquires reuse existing instances.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// Try to get an existing converter (non-blocking)
	select {
	case conv := <-p.sem:
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for a release
	return <-p.sem, nil
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	select {
	case p.sem <- conv:
	default:
		// Pool full: drop the extra converter, nothing to clean up.
	}
}
