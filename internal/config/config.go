package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string        // API bind address, e.g., "127.0.0.1:8080" or ":8080"
	LogDir            string        // logs directory
	DatabaseURL       string        // empty disables the postgres readiness check
	ReadyHTTPTargets  []string      // downstream URLs probed for readiness
	ReadyDNSHosts     []string      // hostnames probed for readiness
	ProbeTimeout      time.Duration // per-probe timeout
	CacheTTL          time.Duration // how long an aggregated decision is cached
	AggregateDeadline time.Duration // 0 derives from the largest probe timeout
	RefreshInterval   time.Duration // 0 disables the background refresher
	RateLimitPerMin   int           // 0 disables rate limiting
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	return Config{
		Addr:              addr,
		LogDir:            logDir,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ReadyHTTPTargets:  splitList(os.Getenv("READY_HTTP_TARGETS")),
		ReadyDNSHosts:     splitList(os.Getenv("READY_DNS_HOSTS")),
		ProbeTimeout:      envMillis("PROBE_TIMEOUT_MS", 3*time.Second),
		CacheTTL:          envMillis("CACHE_TTL_MS", 2*time.Second),
		AggregateDeadline: envMillis("AGGREGATE_DEADLINE_MS", 0),
		RefreshInterval:   envMillis("REFRESH_INTERVAL_MS", 0),
		RateLimitPerMin:   envInt("RATE_LIMIT_PER_MIN", 0),
	}
}

func envMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
