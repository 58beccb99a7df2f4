package checks

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/hamed0406/healthd/internal/health"
)

// Resolution classes reported as check detail.
const (
	classResolves = "RESOLVES"
	classNXDomain = "NXDOMAIN"
	classNoARec   = "NO_A_RECORD"
	classServFail = "SERVFAIL_OR_TIMEOUT"
	classInvalid  = "INVALID_NAME"
)

// DNS reports healthy when host resolves to at least one A or AAAA record via
// the given resolver (the OS resolver when nil). The detail classifies the
// outcome: RESOLVES, NXDOMAIN, NO_A_RECORD, SERVFAIL_OR_TIMEOUT or
// INVALID_NAME.
func DNS(r *net.Resolver, host string) health.CheckFunc {
	if r == nil {
		r = &net.Resolver{}
	}
	host = strings.TrimSpace(host)

	return func(ctx context.Context) (bool, string, error) {
		if host == "" || strings.Contains(host, "://") {
			return false, classInvalid, fmt.Errorf("invalid host %q", host)
		}

		ips, err := r.LookupIP(ctx, "ip", host)
		if err == nil && len(ips) > 0 {
			return true, classResolves, nil
		}
		if err == nil {
			return false, classNoARec, fmt.Errorf("no A/AAAA records for %q", host)
		}

		class := classServFail
		var de *net.DNSError
		if errors.As(err, &de) && de.IsNotFound {
			class = classNXDomain
			// A delegated zone without address records still answers NS.
			if ns, nerr := r.LookupNS(ctx, host); nerr == nil && len(ns) > 0 {
				class = classNoARec
			}
		}
		return false, class, err
	}
}
