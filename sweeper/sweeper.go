package sweeper

import (
	"log"
	"sync"
	"time"
)

// DefaultInterval is how often expired entries are reclaimed.
const DefaultInterval = 10 * time.Minute

// Target is anything that can drop its expired entries.
type Target interface {
	Sweep() int
}

/*
Sweeper reclaims space proactively instead of waiting for reads to find
expired entries.

Start runs one pass immediately, then one pass per interval on a
background goroutine until Stop is called.
*/
type Sweeper struct {
	target   Target
	interval time.Duration
	logger   *log.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Sweeper. A non-positive interval uses DefaultInterval.
func New(target Target, interval time.Duration, logger *log.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{
		target:   target,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start performs the startup pass and launches the periodic worker.
// It returns how many entries the startup pass removed.
func (s *Sweeper) Start() int {
	removed := s.target.Sweep()
	if removed > 0 {
		s.logger.Printf("cache sweep: removed %d expired entries at startup", removed)
	}

	s.wg.Add(1)
	go s.worker()
	return removed
}

/*
worker runs in the background. It wakes up on every tick and sweeps.
*/
func (s *Sweeper) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.target.Sweep(); removed > 0 {
				s.logger.Printf("cache sweep: removed %d expired entries", removed)
			}
		case <-s.stop:
			return
		}
	}
}

/*
Stop shuts the worker down and waits for an in-flight pass to finish.
Calling Stop more than once is safe.
*/
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}
