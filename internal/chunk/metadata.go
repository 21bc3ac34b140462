package chunk

import (
	"regexp"
	"strings"
)

var (
	fenceLineRe = regexp.MustCompile(`^\*{5,}\s*$`)
	separatorRe = regexp.MustCompile(`(?m)^-{5,}\s*$`)
	fieldLineRe = regexp.MustCompile(`(?i)^(title|description|keywords)\s*:\s*(.*)$`)
)

// ExtractMetadata parses a leading "*****"-fenced metadata block out of
// markdown, returning the parsed metadata and the markdown body that
// remains after the block (and, when applicable, its trailing "-----"
// separator) have been stripped.
func ExtractMetadata(markdown string) (Metadata, string) {
	meta := Metadata{Title: DefaultTitle}

	lines := strings.Split(markdown, "\n")
	if len(lines) == 0 || !fenceLineRe.MatchString(lines[0]) {
		return meta, markdown
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if fenceLineRe.MatchString(lines[i]) {
			end = i
			break
		}
	}
	if end == -1 {
		return meta, markdown
	}

	for _, line := range lines[1:end] {
		m := fieldLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "title":
			if value != "" {
				meta.Title = value
			}
		case "description":
			meta.Description = value
		case "keywords":
			meta.Keywords = splitKeywords(value)
		}
	}

	rest := strings.Join(lines[end+1:], "\n")

	if meta.Title != DefaultTitle {
		if loc := separatorRe.FindStringIndex(rest); loc != nil {
			rest = rest[loc[1]:]
		}
	}

	return meta, rest
}

func splitKeywords(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
