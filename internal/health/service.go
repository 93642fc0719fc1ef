package health

import (
	"context"
	"sync"
	"time"
)

type CheckFunc func(ctx context.Context) error

type Result struct {
	At     time.Time
	OK     bool
	Checks map[string]string
}

// Service runs named dependency checks and caches the combined result for a
// TTL so hot endpoints don't hammer the dependencies.
type Service struct {
	mu       sync.Mutex
	checks   map[string]CheckFunc
	cacheTTL time.Duration
	cached   Result
	staleAt  time.Time
}

func NewService(cacheTTL time.Duration, checks map[string]CheckFunc) *Service {
	return &Service{cacheTTL: cacheTTL, checks: checks, cached: Result{Checks: map[string]string{}}}
}

func (s *Service) Check(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Before(s.staleAt) {
		return s.cached
	}

	res := Result{At: time.Now().UTC(), OK: true, Checks: make(map[string]string, len(s.checks))}
	for name, fn := range s.checks {
		if err := fn(ctx); err != nil {
			res.OK = false
			res.Checks[name] = err.Error()
			continue
		}
		res.Checks[name] = "ok"
	}

	s.cached = res
	s.staleAt = time.Now().Add(s.cacheTTL)
	return res
}
