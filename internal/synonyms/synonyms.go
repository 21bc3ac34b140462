// Package synonyms implements the term -> replacement-terms dictionary used
// to expand search keywords before ranking, covering common documentation
// vocabulary (auth, config, API, etc.) rather than source-code identifiers.
package synonyms

import (
	"strings"
	"unicode"
)

// Dictionary maps a normalized term to its list of replacement terms.
// Terms not present here pass through Convert unchanged.
var Dictionary = map[string][]string{
	"install":        {"installation", "setup", "getting started", "quickstart"},
	"installation":   {"install", "setup", "getting started"},
	"setup":          {"install", "installation", "configure", "configuration"},
	"quickstart":     {"getting started", "install", "tutorial"},
	"config":         {"configuration", "settings", "options", "setup"},
	"configuration":  {"config", "settings", "options"},
	"settings":       {"config", "configuration", "options", "preferences"},
	"auth":           {"authentication", "login", "oauth", "sso"},
	"authentication": {"auth", "login", "oauth", "sso", "authorization"},
	"authorization":  {"auth", "permissions", "access control", "rbac"},
	"login":          {"auth", "authentication", "sign in"},
	"error":          {"errors", "exception", "failure", "troubleshooting"},
	"errors":         {"error", "exceptions", "troubleshooting"},
	"exception":      {"error", "errors", "panic", "throw"},
	"troubleshoot":   {"troubleshooting", "debug", "fix", "error"},
	"troubleshooting": {"debug", "fix", "error handling", "faq"},
	"debug":          {"debugging", "troubleshoot", "logs", "diagnostics"},
	"api":            {"apis", "endpoint", "reference", "sdk"},
	"endpoint":       {"route", "api", "url", "path"},
	"reference":      {"api reference", "docs", "documentation"},
	"sdk":            {"library", "client", "package", "api"},
	"library":        {"sdk", "package", "module"},
	"package":        {"library", "module", "dependency"},
	"migrate":        {"migration", "upgrade", "breaking changes"},
	"migration":      {"migrate", "upgrade", "breaking changes"},
	"upgrade":        {"migrate", "migration", "update", "breaking changes"},
	"breaking":       {"breaking changes", "migration", "upgrade"},
	"deploy":         {"deployment", "publish", "release", "production"},
	"deployment":     {"deploy", "publish", "release"},
	"env":            {"environment", "environment variables", "config"},
	"environment":    {"env", "environment variables"},
	"webhook":        {"webhooks", "callback", "event"},
	"cli":            {"command line", "terminal", "console"},
	"token":          {"tokens", "access token", "api key"},
	"key":            {"api key", "secret", "credential", "token"},
	"plugin":         {"plugins", "extension", "addon", "integration"},
	"integration":    {"plugin", "addon", "connector"},
	"test":           {"testing", "tests", "unit test", "e2e"},
	"testing":        {"test", "tests", "unit testing"},
	"performance":    {"perf", "optimization", "speed", "latency"},
	"tutorial":       {"guide", "walkthrough", "getting started", "quickstart"},
	"guide":          {"tutorial", "walkthrough", "how-to"},
	"example":        {"examples", "sample", "demo", "snippet"},
	"faq":            {"frequently asked questions", "troubleshooting", "help"},
	"rate":           {"rate limit", "rate limiting", "throttle"},
	"limit":          {"rate limit", "quota", "cap"},
	"webhooks":       {"webhook", "event", "callback"},
}

// Lookup returns the replacement terms for term, or nil if none exist.
// Normalization treats Korean terms as-is; other terms are lowercased and
// trimmed before lookup.
func Lookup(term string) []string {
	key := normalize(term)
	if syns, ok := Dictionary[key]; ok {
		return syns
	}
	return nil
}

// Convert expands each term to its replacements if present, else keeps the
// term itself. Ordering is preserved and no deduplication is performed.
func Convert(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if syns := Lookup(t); len(syns) > 0 {
			out = append(out, syns...)
		} else {
			out = append(out, t)
		}
	}
	return out
}

func normalize(term string) string {
	if containsHangul(term) {
		return term
	}
	return strings.TrimSpace(strings.ToLower(term))
}

func containsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}
