package citation

import (
	"strconv"
	"strings"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// formatAPA renders APA style:
//
//	Smith, J., Doe, J., & Brown, A. (2023). Title. Journal, 12(3), 200-210. https://doi.org/10.1/x
func formatAPA(r *domain.Record) string {
	var authors string
	switch {
	case len(r.Authors) == 0:
		authors = unknownAuthor
	case truncated(StyleAPA, len(r.Authors)):
		authors = surnameFirst(r.Authors[0].Name) + " et al."
	case len(r.Authors) == 1:
		authors = surnameFirst(r.Authors[0].Name)
	default:
		names := make([]string, 0, len(r.Authors))
		for _, a := range r.Authors {
			names = append(names, surnameFirst(a.Name))
		}
		authors = strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}

	var year string
	if r.Year != 0 {
		year = "(" + strconv.Itoa(r.Year) + ")."
	}

	var title string
	if r.Title != "" {
		title = r.Title + "."
	}

	var volume string
	if r.Volume != "" {
		volume = r.Volume
		if r.Issue != "" {
			volume += "(" + r.Issue + ")"
		}
	}
	venue := joinSegments(", ", r.Journal, volume, r.Pages)
	if venue != "" {
		venue += "."
	}

	var doi string
	if r.DOI != "" {
		doi = "https://doi.org/" + r.DOI
	}

	return joinSegments(" ", authors, year, title, venue, doi)
}

// formatMLA renders MLA style:
//
//	Smith, John, and Jane Doe. "Title." Journal, vol. 12, no. 3, 2023, pp. 200-210.
func formatMLA(r *domain.Record) string {
	var authors string
	switch {
	case len(r.Authors) == 0:
		authors = unknownAuthor + "."
	case truncated(StyleMLA, len(r.Authors)):
		authors = surnameFullFirst(r.Authors[0].Name) + ", et al."
	case len(r.Authors) == 1:
		authors = surnameFullFirst(r.Authors[0].Name) + "."
	default:
		authors = surnameFullFirst(r.Authors[0].Name) + ", and " + r.Authors[1].Name + "."
	}

	var title string
	if r.Title != "" {
		title = "\"" + r.Title + ".\""
	}

	var volume, issue, pages, year string
	if r.Volume != "" {
		volume = "vol. " + r.Volume
	}
	if r.Issue != "" {
		issue = "no. " + r.Issue
	}
	if r.Pages != "" {
		pages = "pp. " + r.Pages
	}
	if r.Year != 0 {
		year = strconv.Itoa(r.Year)
	}
	venue := joinSegments(", ", r.Journal, volume, issue, year, pages)
	if venue != "" {
		venue += "."
	}

	return joinSegments(" ", authors, title, venue)
}

// formatChicago renders Chicago style:
//
//	Smith, John, and Jane Doe. "Title." Journal 12, no. 3 (2023): 200-210.
func formatChicago(r *domain.Record) string {
	var authors string
	switch {
	case len(r.Authors) == 0:
		authors = unknownAuthor + "."
	case truncated(StyleChicago, len(r.Authors)):
		authors = surnameFullFirst(r.Authors[0].Name) + ", et al."
	case len(r.Authors) == 1:
		authors = surnameFullFirst(r.Authors[0].Name) + "."
	default:
		names := make([]string, 0, len(r.Authors))
		names = append(names, surnameFullFirst(r.Authors[0].Name))
		for _, a := range r.Authors[1 : len(r.Authors)-1] {
			names = append(names, a.Name)
		}
		authors = strings.Join(names, ", ") + ", and " + r.Authors[len(r.Authors)-1].Name + "."
	}

	var title string
	if r.Title != "" {
		title = "\"" + r.Title + ".\""
	}

	journal := r.Journal
	if journal != "" && r.Volume != "" {
		journal += " " + r.Volume
	}
	var issue string
	if r.Issue != "" {
		issue = "no. " + r.Issue
	}
	venue := joinSegments(", ", journal, issue)
	if r.Year != 0 {
		venue = joinSegments(" ", venue, "("+strconv.Itoa(r.Year)+")")
	}
	if r.Pages != "" && venue != "" {
		venue += ": " + r.Pages
	}
	if venue != "" {
		venue += "."
	}

	return joinSegments(" ", authors, title, venue)
}

// formatIEEE renders IEEE style:
//
//	J. Smith, J. Doe, and A. Brown, "Title," Journal, vol. 12, no. 3, pp. 200-210, 2023.
func formatIEEE(r *domain.Record) string {
	var authors string
	switch {
	case len(r.Authors) == 0:
		authors = unknownAuthor
	case truncated(StyleIEEE, len(r.Authors)):
		authors = initialsFirst(r.Authors[0].Name) + " et al."
	case len(r.Authors) == 1:
		authors = initialsFirst(r.Authors[0].Name)
	default:
		names := make([]string, 0, len(r.Authors))
		for _, a := range r.Authors {
			names = append(names, initialsFirst(a.Name))
		}
		authors = strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}

	var title string
	if r.Title != "" {
		title = "\"" + r.Title + ",\""
	}

	var volume, issue, pages, year string
	if r.Volume != "" {
		volume = "vol. " + r.Volume
	}
	if r.Issue != "" {
		issue = "no. " + r.Issue
	}
	if r.Pages != "" {
		pages = "pp. " + r.Pages
	}
	if r.Year != 0 {
		year = strconv.Itoa(r.Year)
	}

	cite := joinSegments(", ", authors, title, r.Journal, volume, issue, pages, year)
	if cite != "" {
		cite += "."
	}
	return cite
}

// formatNature renders Nature style:
//
//	Smith, J., Doe, J. & Brown, A. Title. Journal 12, 200-210 (2023).
func formatNature(r *domain.Record) string {
	var authors string
	switch {
	case len(r.Authors) == 0:
		authors = unknownAuthor + "."
	case truncated(StyleNature, len(r.Authors)):
		authors = surnameFirst(r.Authors[0].Name) + " et al."
	case len(r.Authors) == 1:
		authors = surnameFirst(r.Authors[0].Name) + "."
	default:
		names := make([]string, 0, len(r.Authors))
		for _, a := range r.Authors {
			names = append(names, surnameFirst(a.Name))
		}
		authors = strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1] + "."
	}

	var title string
	if r.Title != "" {
		title = r.Title + "."
	}

	journal := r.Journal
	if journal != "" && r.Volume != "" {
		journal += " " + r.Volume
	}
	venue := joinSegments(", ", journal, r.Pages)
	if r.Year != 0 {
		venue = joinSegments(" ", venue, "("+strconv.Itoa(r.Year)+")")
	}
	if venue != "" {
		venue += "."
	}

	return joinSegments(" ", authors, title, venue)
}
