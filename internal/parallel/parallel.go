// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers int // Number of worker goroutines.
	MinJobs int // Fewer jobs than this run on the calling goroutine.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		MinJobs: 2,
	}
}

// Run calls job(i) for every i in [0, n). Jobs are split into contiguous
// chunks, one per worker. The errors of all failed jobs are joined in index
// order; Run returns nil if every job succeeded.
func Run(n int, job func(i int) error, cfg Config) error {
	errs := make([]error, n)
	if cfg.Workers <= 1 || n < cfg.MinJobs {
		for i := range n {
			errs[i] = job(i)
		}
		return errors.Join(errs...)
	}

	var wg sync.WaitGroup
	chunk := (n + cfg.Workers - 1) / cfg.Workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				errs[i] = job(i)
			}
		}(start, end)
	}
	wg.Wait()
	return errors.Join(errs...)
}
