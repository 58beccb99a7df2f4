package checks

import (
	"context"
	"testing"
	"time"
)

func TestDNS_InvalidName(t *testing.T) {
	for _, host := range []string{"", "  ", "https://example.com"} {
		check := DNS(nil, host)
		healthy, detail, err := check(context.Background())
		if healthy {
			t.Fatalf("host %q: want unhealthy", host)
		}
		if detail != classInvalid {
			t.Fatalf("host %q: want %s, got %s", host, classInvalid, detail)
		}
		if err == nil {
			t.Fatalf("host %q: want error", host)
		}
	}
}

func TestProcess_AlwaysHealthy(t *testing.T) {
	check := Process(time.Now().Add(-time.Minute))
	healthy, detail, err := check(context.Background())
	if !healthy || err != nil {
		t.Fatalf("process check must be healthy, got healthy=%v err=%v", healthy, err)
	}
	if detail == "" {
		t.Fatalf("want uptime detail")
	}
}
