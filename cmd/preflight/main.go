// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	httpTargets := strings.TrimSpace(os.Getenv("READY_HTTP_TARGETS"))
	dnsHosts := strings.TrimSpace(os.Getenv("READY_DNS_HOSTS"))

	if addr == "" {
		warn("ADDR is empty; default 127.0.0.1:8080 will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" && httpTargets == "" && dnsHosts == "" {
		warn("no readiness probes configured (DATABASE_URL, READY_HTTP_TARGETS, READY_DNS_HOSTS all empty) — /readyz will be vacuously healthy.")
	}

	for name, v := range map[string]string{"READY_HTTP_TARGETS": httpTargets, "READY_DNS_HOSTS": dnsHosts} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. a.example.com,b.example.com")
		}
	}

	for _, key := range []string{"PROBE_TIMEOUT_MS", "CACHE_TTL_MS", "AGGREGATE_DEADLINE_MS", "REFRESH_INTERVAL_MS", "RATE_LIMIT_PER_MIN"} {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			fail(key + " must be a non-negative integer, got " + v)
		}
		ok(key + "=" + v)
	}

	if v := strings.TrimSpace(os.Getenv("PROBE_TIMEOUT_MS")); v == "0" {
		fail("PROBE_TIMEOUT_MS=0 is invalid — every probe needs a positive timeout.")
	}

	ok("preflight passed")
}
