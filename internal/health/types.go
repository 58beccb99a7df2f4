package health

import "time"

// Kind separates liveness checks (is the process alive, no dependency I/O)
// from readiness checks (can the process serve traffic, may hit dependencies).
// The two are evaluated and cached independently.
type Kind int

const (
	Liveness Kind = iota
	Readiness
)

func (k Kind) String() string {
	switch k {
	case Liveness:
		return "liveness"
	case Readiness:
		return "readiness"
	default:
		return "unknown"
	}
}

// Status is the aggregate health verdict.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of running a single probe once.
type Result struct {
	Name     string
	Healthy  bool
	Detail   string
	Err      error
	Duration time.Duration
	TimedOut bool
}

// Decision is the aggregate verdict for one Kind. Results keeps registration
// order regardless of probe completion order. EvaluatedAt is when the
// aggregation ran, not when a cached copy was read. A Decision is never
// mutated after construction.
type Decision struct {
	Overall     Status
	Kind        Kind
	Results     []Result
	EvaluatedAt time.Time
}
