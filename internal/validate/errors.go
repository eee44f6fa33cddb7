// Package validate normalizes and screens audit target URLs before any network access.
package validate

import "fmt"

// InvalidURLError indicates the raw input could not be parsed into a usable URL.
type InvalidURLError struct {
	Raw   string
	Cause error
}

func (e *InvalidURLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.Raw, e.Cause)
	}
	return fmt.Sprintf("invalid URL %q", e.Raw)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Cause
}

// UnsupportedSchemeError indicates a scheme other than http or https.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported URL scheme %q: only http and https are allowed", e.Scheme)
}

// FileSchemeError indicates a file: URL, which is never fetched.
type FileSchemeError struct{}

func (e *FileSchemeError) Error() string {
	return "file URLs are not allowed"
}

// BlockedHostError indicates a hostname that matched the internal-target blocklist.
type BlockedHostError struct {
	Host string
}

func (e *BlockedHostError) Error() string {
	return fmt.Sprintf("host %q is blocked: internal and private targets cannot be audited", e.Host)
}
