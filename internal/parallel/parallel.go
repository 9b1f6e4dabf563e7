// Package parallel splits index ranges across goroutines.
//
// Work is handed out as contiguous spans so callers can keep per-worker state,
// such as a private gradient tape, for the lifetime of a span.
package parallel

import "sync"

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on worker goroutines.
	MinChunkSize int  // Minimum items per goroutine.
}

// Workers returns a Config that uses up to n goroutines with no minimum chunk
// size. n <= 1 disables parallelism.
func Workers(n int) Config {
	return Config{
		Enabled:      n > 1,
		NumWorkers:   max(n, 1),
		MinChunkSize: 1,
	}
}

// Span is the half-open range [Start, End) processed by one worker.
type Span struct {
	Worker int
	Start  int
	End    int
}

// Len returns End - Start.
func (s Span) Len() int { return s.End - s.Start }

// Split divides [0, n) into contiguous spans in index order.
// A disabled Config, or n below MinChunkSize, yields a single span.
func Split(n int, cfg Config) []Span {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		return []Span{{Worker: 0, Start: 0, End: n}}
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	spans := make([]Span, 0, (n+chunk-1)/chunk)
	for start := 0; start < n; start += chunk {
		spans = append(spans, Span{Worker: len(spans), Start: start, End: min(start+chunk, n)})
	}
	return spans
}

// ForSpans runs f once per span of Split(n, cfg) and returns when all are done.
// A single span runs on the calling goroutine.
func ForSpans(n int, f func(s Span), cfg Config) {
	spans := Split(n, cfg)
	if len(spans) == 1 {
		f(spans[0])
		return
	}

	var wg sync.WaitGroup
	for _, s := range spans {
		wg.Add(1)
		go func(s Span) {
			defer wg.Done()
			f(s)
		}(s)
	}
	wg.Wait()
}
