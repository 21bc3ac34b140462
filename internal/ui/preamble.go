package ui

import "fmt"

// Header renders a styled section title, used at the top of a tool/CLI
// text payload's human-readable preamble.
func Header(styles Styles, title string) string {
	return styles.Header.Render(title)
}

// StatusLine renders one library's availability line for the
// list-libraries preamble: a bullet, its id, and an error detail when the
// library has permanently failed to initialize.
func StatusLine(styles Styles, id string, available bool, errMsg string) string {
	if available {
		return styles.Success.Render("✓") + " " + id
	}
	line := styles.Error.Render("✗") + " " + id
	if errMsg != "" {
		line += " " + styles.Dim.Render("("+errMsg+")")
	}
	return line
}

// CountLine renders a "N of M" style summary line.
func CountLine(styles Styles, label string, n, total int) string {
	return styles.Label.Render(fmt.Sprintf("%s: %d/%d", label, n, total))
}
