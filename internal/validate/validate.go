package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// schemePattern matches a leading URL scheme (e.g. "https:", "ftp:").
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// blockedPrefixes are hostname prefixes that indicate private address space.
var blockedPrefixes = []string{"192.168.", "10.", "172."}

// TargetURL normalizes a raw target string into a fully qualified URL that is
// safe to hand to the fetching layer. Inputs without a scheme are treated as
// https. It returns one of four error kinds: *InvalidURLError,
// *UnsupportedSchemeError, *FileSchemeError, or *BlockedHostError.
//
// The host screening is a heuristic blocklist, not exhaustive SSRF
// protection: it does not resolve DNS, so rebinding and redirect-based
// bypasses are out of scope here.
func TargetURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &InvalidURLError{Raw: raw}
	}

	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &InvalidURLError{Raw: raw, Cause: err}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "file":
		return nil, &FileSchemeError{}
	default:
		return nil, &UnsupportedSchemeError{Scheme: u.Scheme}
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, &InvalidURLError{Raw: raw}
	}
	if blockedHost(host) {
		return nil, &BlockedHostError{Host: host}
	}

	return u, nil
}

// Origin returns the scheme://host[:port] portion of a validated URL, used as
// the base for auxiliary resource fetches.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

func blockedHost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}
	return strings.Contains(host, "internal") || strings.Contains(host, "local")
}
