package llmsindex

import (
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/aman-cerp/docsearch-mcp/internal/urlutil"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	bareURLRe      = regexp.MustCompile(`https?://\S+`)
	versionPathRe  = regexp.MustCompile(`/v(\d)/`)
	pathTokenRe    = regexp.MustCompile(`(?:https?://\S+|/\S+)`)
	leadingPunctRe = regexp.MustCompile(`^[\s:\-–—]+`)
)

// Parse turns the text body of an llms.txt index into a normalized
// sequence of RawDocuments. libraryID is used only to label warnings
// logged for lines that fail to parse; parsing never aborts on a single
// bad line.
func Parse(body, libraryID, indexURL string) []RawDocument {
	var docs []RawDocument

	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if !pathTokenRe.MatchString(line) {
			continue
		}

		doc, ok := parseLine(line, indexURL)
		if !ok {
			slog.Warn("llmsindex: failed to parse index line", "library", libraryID, "line", rawLine)
			continue
		}
		docs = append(docs, doc)
	}

	return docs
}

func parseLine(line, indexURL string) (RawDocument, bool) {
	title, link, rest, hasMarkdownLink := extractMarkdownLink(line)
	if !hasMarkdownLink {
		loc := bareURLRe.FindStringIndex(line)
		if loc == nil {
			return RawDocument{}, false
		}
		link = line[loc[0]:loc[1]]
		rest = line[loc[1]:]
	}

	resolved, err := urlutil.Resolve(link, indexURL)
	if err != nil {
		return RawDocument{}, false
	}

	if title == "" {
		title = deriveTitle(resolved)
	}

	doc := RawDocument{
		RawLine:     line,
		Title:       title,
		Link:        resolved,
		Description: deriveDescription(rest),
		Category:    deriveCategory(resolved),
	}
	doc.Version = deriveVersion(resolved, title)

	return doc, true
}

// extractMarkdownLink returns (title, url, trailingText, true) for a
// "[title](url)" line, else ("", "", "", false).
func extractMarkdownLink(line string) (string, string, string, bool) {
	m := markdownLinkRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", "", "", false
	}
	title := line[m[2]:m[3]]
	link := line[m[4]:m[5]]
	rest := line[m[1]:]
	return title, link, rest, true
}

func deriveTitle(resolvedURL string) string {
	u, err := url.Parse(resolvedURL)
	if err != nil {
		return resolvedURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return u.Host
}

// deriveDescription applies the "):" / ")" / post-URL fallback chain,
// stripping leading punctuation from whichever remainder is chosen.
func deriveDescription(rest string) string {
	if idx := strings.Index(rest, "):"); idx != -1 {
		return cleanDescription(rest[idx+2:])
	}
	if idx := strings.Index(rest, ")"); idx != -1 {
		return cleanDescription(rest[idx+1:])
	}
	return cleanDescription(rest)
}

func cleanDescription(s string) string {
	return strings.TrimSpace(leadingPunctRe.ReplaceAllString(s, ""))
}

func deriveVersion(resolvedURL, title string) Version {
	if m := versionPathRe.FindStringSubmatch(resolvedURL); m != nil {
		switch m[1] {
		case "1":
			return VersionV1
		case "2":
			return VersionV2
		}
	}

	u, err := url.Parse(resolvedURL)
	if err == nil {
		lowerPath := strings.ToLower(u.Path)
		if strings.Contains(lowerPath, "sdk") || strings.Contains(lowerPath, "guides") {
			return VersionV1
		}
	}

	lowerTitle := strings.ToLower(title)
	switch {
	case strings.Contains(lowerTitle, "version 1"):
		return VersionV1
	case strings.Contains(lowerTitle, "version 2"):
		return VersionV2
	}

	return ""
}

func deriveCategory(resolvedURL string) Category {
	u, err := url.Parse(resolvedURL)
	if err != nil {
		return CategoryUnknown
	}
	first := firstPathSegment(u.Path)
	if cat, ok := knownCategories[strings.ToLower(first)]; ok {
		return cat
	}
	return CategoryUnknown
}

func firstPathSegment(p string) string {
	clean := path.Clean(strings.TrimPrefix(p, "/"))
	parts := strings.SplitN(clean, "/", 2)
	return parts[0]
}
