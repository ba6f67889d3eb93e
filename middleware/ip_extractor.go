package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// NewIPExtractor returns the socket peer address unless trustedProxies
// lists CIDR ranges. In that case X-Forwarded-For is honoured only for hops
// inside those ranges. Client supplied headers are never trusted otherwise.
func NewIPExtractor(trustedProxies []string) echo.IPExtractor {
	ranges := ParseTrustedProxies(trustedProxies)
	if len(ranges) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range ranges {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// ParseTrustedProxies accepts CIDRs or bare addresses; invalid entries are
// logged and skipped.
func ParseTrustedProxies(entries []string) []*net.IPNet {
	var out []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 128
				if v4 := ip.To4(); v4 != nil {
					ip, bits = v4, 32
				}
				out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
				continue
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			logger.Logger.Warn("ignoring invalid trusted proxy", "entry", entry, "error", err)
			continue
		}
		out = append(out, ipNet)
	}
	return out
}
