package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthd/internal/health"
	"github.com/hamed0406/healthd/internal/httpapi/middleware"
)

type Server struct {
	Logger          *zap.Logger
	Health          *health.Service
	RateLimitPerMin int
}

func NewServer(l *zap.Logger, svc *health.Service, rateLimitPerMin int) *Server {
	return &Server{Logger: l, Health: svc, RateLimitPerMin: rateLimitPerMin}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RateLimitPerMin, s.RateLimitPerMin))

	r.Get("/healthz", s.handleProbe(health.Liveness))
	r.Get("/readyz", s.handleProbe(health.Readiness))

	return r
}

type checkPayload struct {
	Name       string  `json:"name"`
	Healthy    bool    `json:"healthy"`
	Detail     string  `json:"detail,omitempty"`
	TimedOut   bool    `json:"timedOut"`
	DurationMS float64 `json:"durationMs"`
}

type decisionPayload struct {
	Status      string         `json:"status"`
	EvaluatedAt time.Time      `json:"evaluatedAt"`
	Checks      []checkPayload `json:"checks"`
}

func (s *Server) handleProbe(kind health.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := s.Health.Evaluate(r.Context(), kind)

		code := http.StatusOK
		if d.Overall != health.StatusHealthy {
			code = http.StatusServiceUnavailable
		}

		s.Logger.Info("probe_served",
			zap.String("kind", kind.String()),
			zap.String("overall", d.Overall.String()),
			zap.Int("checks", len(d.Results)),
			zap.Int("code", code),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(toPayload(d))
	}
}

func toPayload(d health.Decision) decisionPayload {
	checks := make([]checkPayload, 0, len(d.Results))
	for _, res := range d.Results {
		detail := res.Detail
		if detail == "" && res.Err != nil {
			detail = res.Err.Error()
		}
		checks = append(checks, checkPayload{
			Name:       res.Name,
			Healthy:    res.Healthy,
			Detail:     detail,
			TimedOut:   res.TimedOut,
			DurationMS: float64(res.Duration.Microseconds()) / 1000.0,
		})
	}
	return decisionPayload{
		Status:      d.Overall.String(),
		EvaluatedAt: d.EvaluatedAt,
		Checks:      checks,
	}
}
