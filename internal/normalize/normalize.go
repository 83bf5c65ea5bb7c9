// Package normalize reduces raw company and profile URLs to canonical keys
// suitable for cross-dataset equality and edit-distance comparison.
package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/publicsuffix"
)

// Kind selects the normalization applied to a dataset's URL column.
type Kind string

const (
	// KindDomain reduces a company website URL to its registrable domain.
	KindDomain Kind = "domain"
	// KindLinkedIn reduces a LinkedIn profile or company URL to its slug.
	KindLinkedIn Kind = "linkedin"
)

// ParseKind validates a kind string from config or manifest input.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindDomain:
		return KindDomain, nil
	case KindLinkedIn:
		return KindLinkedIn, nil
	default:
		return "", eris.Errorf("normalize: unknown kind %q", s)
	}
}

// brokenSchemeRe repairs the "http//example.com" typo family seen in CRM
// exports, with or without a real scheme prefixed to it.
var brokenSchemeRe = regexp.MustCompile(`^(https?://)?http//`)

// slugCruftRe strips everything that is not a word character or hyphen from
// a LinkedIn slug.
var slugCruftRe = regexp.MustCompile(`[^a-z0-9_-]+`)

// Normalize reduces a raw URL string to its canonical key for the given kind.
// It is pure, deterministic, and idempotent: feeding a returned key back in
// yields the same key. Inputs with no extractable key return "" rather than
// an error; such rows are unmatchable, not fatal.
func Normalize(raw string, kind Kind) string {
	switch kind {
	case KindLinkedIn:
		return normalizeLinkedIn(raw)
	default:
		return normalizeDomain(raw)
	}
}

// normalizeDomain extracts the registrable domain (public suffix + one label)
// from a URL-ish string, lower-cased with any leading www label dropped.
func normalizeDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = brokenSchemeRe.ReplaceAllString(s, "http://")
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.Trim(host, ".")
	host = strings.TrimPrefix(host, "www.")
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}

// normalizeLinkedIn extracts the profile or company slug from a LinkedIn URL.
// Already-normalized slugs pass through unchanged.
func normalizeLinkedIn(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Drop query strings and trailing /about sections before slug extraction.
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "/about"); i >= 0 {
		s = s[:i]
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.TrimRight(s, "/")

	for _, marker := range []string{"/company/", "/in/", "/school/"} {
		if i := strings.Index(s, marker); i >= 0 {
			s = s[i+len(marker):]
			if j := strings.IndexByte(s, '/'); j >= 0 {
				s = s[:j]
			}
			break
		}
	}

	s = strings.ToLower(s)
	return slugCruftRe.ReplaceAllString(s, "")
}
