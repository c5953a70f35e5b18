package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain DOI lowercased",
			input:    "10.1038/Nature12373",
			expected: "10.1038/nature12373",
		},
		{
			name:     "https doi.org prefix stripped",
			input:    "https://doi.org/10.1038/nature12373",
			expected: "10.1038/nature12373",
		},
		{
			name:     "http doi.org prefix stripped",
			input:    "http://doi.org/10.1126/science.1234567",
			expected: "10.1126/science.1234567",
		},
		{
			name:     "doi scheme stripped",
			input:    "doi:10.1000/XYZ",
			expected: "10.1000/xyz",
		},
		{
			name:     "whitespace trimmed",
			input:    "  10.1/x  ",
			expected: "10.1/x",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDOI(tt.input))
		})
	}
}

func TestRecordAddSource(t *testing.T) {
	rec := &Record{Title: "Test"}

	added := rec.AddSource(SourceLink{
		URL:        "https://example.org/paper",
		Label:      LabelPublisherPage,
		AccessType: AccessPaywalled,
	})
	assert.True(t, added)
	assert.Len(t, rec.Sources, 1)

	// Same URL is rejected even with a different label.
	added = rec.AddSource(SourceLink{
		URL:        "https://example.org/paper",
		Label:      LabelOpenAccessPDF,
		AccessType: AccessOpenAccess,
	})
	assert.False(t, added)
	assert.Len(t, rec.Sources, 1)

	added = rec.AddSource(SourceLink{
		URL:        "https://example.org/paper.pdf",
		Label:      LabelOpenAccessPDF,
		AccessType: AccessOpenAccess,
	})
	assert.True(t, added)
	assert.Len(t, rec.Sources, 2)

	// Insertion order is preserved.
	assert.Equal(t, "https://example.org/paper", rec.Sources[0].URL)
	assert.Equal(t, "https://example.org/paper.pdf", rec.Sources[1].URL)
}

func TestRecordFirstAuthor(t *testing.T) {
	rec := &Record{}
	assert.Equal(t, Author{}, rec.FirstAuthor())

	rec.Authors = []Author{{Name: "John Doe"}, {Name: "Jane Smith"}}
	assert.Equal(t, "John Doe", rec.FirstAuthor().Name)
}

func TestRecordHasDOI(t *testing.T) {
	rec := &Record{}
	assert.False(t, rec.HasDOI())

	rec.DOI = "10.1/x"
	assert.True(t, rec.HasDOI())
}
