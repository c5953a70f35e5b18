// Package citation renders scholarly records into formatted citation
// strings.
//
// Rendering is a pure function of the record: no style ever returns an
// error, and missing fields degrade by omitting the segment rather than
// emitting placeholders like "None". The one exception is the author list,
// where an empty list renders as "Unknown" so every citation remains
// readable.
//
// Author-list truncation thresholds are fixed per style. They come from the
// published citation standards, not from engineering judgement, and must not
// be tuned.
package citation

import (
	"strings"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// Style names accepted by Format and produced by Render.
const (
	StyleAPA     = "APA"
	StyleMLA     = "MLA"
	StyleChicago = "Chicago"
	StyleIEEE    = "IEEE"
	StyleNature  = "Nature"
	StyleBibTeX  = "BibTeX"
	StyleRIS     = "RIS"
)

// unknownAuthor substitutes for an absent author list in every style.
const unknownAuthor = "Unknown"

// Formatter renders a record in one citation style.
type Formatter func(*domain.Record) string

// styles is the style lookup table. Adding a style means adding one entry.
var styles = map[string]Formatter{
	StyleAPA:     formatAPA,
	StyleMLA:     formatMLA,
	StyleChicago: formatChicago,
	StyleIEEE:    formatIEEE,
	StyleNature:  formatNature,
	StyleBibTeX:  formatBibTeX,
	StyleRIS:     formatRIS,
}

// maxAuthors holds the per-style author-list truncation thresholds. Past
// the threshold a style cites the first author followed by "et al.".
var maxAuthors = map[string]int{
	StyleMLA:     2,
	StyleNature:  5,
	StyleIEEE:    6,
	StyleAPA:     7,
	StyleChicago: 10,
}

// StyleNames returns the supported style names in rendering order.
func StyleNames() []string {
	return []string{StyleAPA, StyleMLA, StyleChicago, StyleIEEE, StyleNature, StyleBibTeX, StyleRIS}
}

// Render formats the record in every supported style.
func Render(r *domain.Record) map[string]string {
	out := make(map[string]string, len(styles))
	for name, format := range styles {
		out[name] = format(r)
	}
	return out
}

// Format renders the record in a single style. The second return value is
// false when the style name is unknown.
func Format(r *domain.Record, style string) (string, bool) {
	format, ok := styles[style]
	if !ok {
		return "", false
	}
	return format(r), true
}

// truncated reports whether the style cites only the first author.
func truncated(style string, authorCount int) bool {
	limit, ok := maxAuthors[style]
	return ok && authorCount > limit
}

// surname returns the last whitespace-separated token of a name.
func surname(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// initials returns the leading name tokens reduced to dotted initials,
// e.g. "John Quincy Adams" -> "J. Q.". Single-token names have no leading
// tokens, so the result is empty and callers fall back to the verbatim name.
func initials(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return ""
	}

	parts := make([]string, 0, len(tokens)-1)
	for _, token := range tokens[:len(tokens)-1] {
		runes := []rune(token)
		parts = append(parts, string(runes[0])+".")
	}
	return strings.Join(parts, " ")
}

// surnameFirst renders "Surname, F. M."; single-token names verbatim.
func surnameFirst(name string) string {
	ini := initials(name)
	if ini == "" {
		return name
	}
	return surname(name) + ", " + ini
}

// initialsFirst renders "F. M. Surname"; single-token names verbatim.
func initialsFirst(name string) string {
	ini := initials(name)
	if ini == "" {
		return name
	}
	return ini + " " + surname(name)
}

// surnameFullFirst renders "Surname, First Middle"; single-token names
// verbatim.
func surnameFullFirst(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return name
	}
	return tokens[len(tokens)-1] + ", " + strings.Join(tokens[:len(tokens)-1], " ")
}

// joinSegments joins non-empty segments with the given separator.
func joinSegments(sep string, segments ...string) string {
	kept := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}

// firstSourceURL returns the record's leading source URL, or empty.
func firstSourceURL(r *domain.Record) string {
	if len(r.Sources) == 0 {
		return ""
	}
	return r.Sources[0].URL
}
