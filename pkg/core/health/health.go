package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status is the outcome of one check or of a whole report
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	// StatusDegraded marks a check that did not answer in time
	StatusDegraded Status = "degraded"
)

// CheckFunc returns nil while the checked component works
type CheckFunc func(ctx context.Context) error

// Result is the outcome of one check
type Result struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

// Registry runs named checks for one service. Each check gets its own
// timeout so a hanging check cannot stall the report.
type Registry struct {
	service string
	version string
	timeout time.Duration
	startAt time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewRegistry creates a registry; a timeout of 0 leaves checks bounded by
// the caller's context only
func NewRegistry(service, version string, timeout time.Duration) *Registry {
	return &Registry{
		service: service,
		version: version,
		timeout: timeout,
		startAt: time.Now(),
		checks:  make(map[string]CheckFunc),
	}
}

// Register adds or replaces the check called name
func (r *Registry) Register(name string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = fn
}

// Check runs all checks concurrently. Results are sorted by name. The
// report is unhealthy when any check failed and degraded when one timed
// out.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	funcs := make(map[string]CheckFunc, len(r.checks))
	for name, p := range r.checks {
		funcs[name] = p
	}
	r.mu.RUnlock()
	sort.Strings(names)

	report := &Report{
		Service: r.service,
		Version: r.version,
		Uptime:  time.Since(r.startAt),
		Results: make([]Result, len(names)),
	}

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			report.Results[i] = r.run(ctx, name, funcs[name])
		}(i, name)
	}
	wg.Wait()

	report.Status = StatusHealthy
	for _, res := range report.Results {
		switch res.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded:
			if report.Status == StatusHealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

func (r *Registry) run(ctx context.Context, name string, fn CheckFunc) Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	res := Result{Name: name, Duration: time.Since(start)}
	switch {
	case err == nil:
		res.Status, res.Message = StatusHealthy, "ok"
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		res.Status = StatusDegraded
		res.Message = "no answer: " + err.Error()
		if r.timeout > 0 {
			res.Message = fmt.Sprintf("no answer within %v: %v", r.timeout, err)
		}
	default:
		res.Status, res.Message = StatusUnhealthy, err.Error()
	}
	return res
}

// Report is the combined outcome of all checks
type Report struct {
	Service string
	Version string
	Status  Status
	Uptime  time.Duration
	Results []Result
}

// Healthy reports whether every check passed
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// ToMap encodes the report with plain maps, slices, strings and float64
// values so it converts to a protobuf Struct
func (r *Report) ToMap() map[string]interface{} {
	checks := make([]interface{}, len(r.Results))
	for i, res := range r.Results {
		checks[i] = map[string]interface{}{
			"name":        res.Name,
			"status":      string(res.Status),
			"message":     res.Message,
			"duration_ms": float64(res.Duration.Microseconds()) / 1000,
		}
	}
	return map[string]interface{}{
		"service":        r.Service,
		"version":        r.Version,
		"status":         string(r.Status),
		"uptime_seconds": r.Uptime.Seconds(),
		"checks":         checks,
	}
}
