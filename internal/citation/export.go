package citation

import (
	"strconv"
	"strings"

	"github.com/unischolar/scholarly-search-service/internal/domain"
)

// formatBibTeX renders a BibTeX @article entry. The citation key is the
// first author's surname concatenated with the year ("n.d." when unknown),
// lower-cased.
func formatBibTeX(r *domain.Record) string {
	authorKey := unknownAuthor
	if first := surname(r.FirstAuthor().Name); first != "" {
		authorKey = first
	}
	yearKey := "n.d."
	if r.Year != 0 {
		yearKey = strconv.Itoa(r.Year)
	}
	key := strings.ReplaceAll(strings.ToLower(authorKey+yearKey), " ", "")

	names := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		names = append(names, a.Name)
	}
	authors := unknownAuthor
	if len(names) > 0 {
		authors = strings.Join(names, " and ")
	}

	fields := []string{
		"  title = {" + r.Title + "}",
		"  author = {" + authors + "}",
	}
	if r.Year != 0 {
		fields = append(fields, "  year = {"+strconv.Itoa(r.Year)+"}")
	}
	if r.Journal != "" {
		fields = append(fields, "  journal = {"+r.Journal+"}")
	}
	if r.DOI != "" {
		fields = append(fields, "  doi = {"+r.DOI+"}")
	}
	if url := firstSourceURL(r); url != "" {
		fields = append(fields, "  url = {"+url+"}")
	}

	return "@article{" + key + ",\n" + strings.Join(fields, ",\n") + "\n}"
}

// formatRIS renders an RIS record. Tag order follows the RIS journal
// article convention: TY, TI, AU (repeated), PY, JO, DO, UR, ER.
func formatRIS(r *domain.Record) string {
	var b strings.Builder
	b.WriteString("TY  - JOUR\n")
	b.WriteString("TI  - " + r.Title + "\n")

	if len(r.Authors) == 0 {
		b.WriteString("AU  - " + unknownAuthor + "\n")
	}
	for _, a := range r.Authors {
		b.WriteString("AU  - " + a.Name + "\n")
	}

	if r.Year != 0 {
		b.WriteString("PY  - " + strconv.Itoa(r.Year) + "\n")
	}
	if r.Journal != "" {
		b.WriteString("JO  - " + r.Journal + "\n")
	}
	if r.DOI != "" {
		b.WriteString("DO  - " + r.DOI + "\n")
	}
	if url := firstSourceURL(r); url != "" {
		b.WriteString("UR  - " + url + "\n")
	}
	b.WriteString("ER  - \n")
	return b.String()
}
