// Package urlutil implements the absolute/relative detection, base
// extraction, and RFC 3986 reference resolution the index parser and
// document loader rely on.
package urlutil

import (
	"fmt"
	"net/url"
)

// IsAbsolute reports whether s parses as a URL with scheme http or https.
func IsAbsolute(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https")
}

// ExtractBase returns scheme://authority for an absolute URL, dropping any
// path, query, or fragment. It fails when s is not absolute.
func ExtractBase(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("urlutil: parse %q: %w", s, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("urlutil: %q is not an absolute URL", s)
	}
	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	return base.String(), nil
}

// Resolve applies RFC 3986 reference resolution: an absolute ref is returned
// unchanged, an empty ref returns base, otherwise ref is resolved against
// base. Resolve fails when base does not parse as a valid URL.
func Resolve(ref, base string) (string, error) {
	if ref == "" {
		if _, err := url.Parse(base); err != nil {
			return "", fmt.Errorf("urlutil: parse base %q: %w", base, err)
		}
		return base, nil
	}
	if IsAbsolute(ref) {
		return ref, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("urlutil: parse base %q: %w", base, err)
	}
	if !baseURL.IsAbs() {
		return "", fmt.Errorf("urlutil: base %q is not absolute", base)
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("urlutil: parse ref %q: %w", ref, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}
