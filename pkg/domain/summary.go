package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// SummaryID identifies a summary. The backend sends numeric ids, other sources may send strings,
// both are normalized to their textual form.
type SummaryID string

// UnmarshalJSON accepts numbers, strings and null
func (id *SummaryID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("summary id: %w", err)
		}
		*id = SummaryID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("summary id: %w", err)
	}
	*id = SummaryID(n.String())
	return nil
}

// String returns id as string
func (id SummaryID) String() string {
	return string(id)
}

// Summary is a single server-produced record: a titled analysis over a set of source articles
type Summary struct {
	ID          SummaryID `json:"id"`
	Title       string    `json:"storyTitle"`
	Body        string    `json:"summaryText"`
	Categories  []string  `json:"assignedCategories"`
	Sources     []string  `json:"sourceUrls"`
	PublishedAt Timestamp `json:"publicationDate"`
	GeneratedAt Timestamp `json:"generatedAt"`
}

// HasCategory checks category membership, case-insensitive
func (s Summary) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with s
func (s Summary) Clone() Summary {
	s.Categories = slices.Clone(s.Categories)
	s.Sources = slices.Clone(s.Sources)
	return s
}

// Preview returns a short plain-text excerpt of the body for list rendering
func (s Summary) Preview() string {
	return Preview(s.Body)
}

// Paragraphs splits the body into non-empty paragraphs for detail rendering
func (s Summary) Paragraphs() []string {
	lines := strings.Split(s.Body, "\n")
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			res = append(res, line)
		}
	}
	return res
}

// Filter is a local view constraint. Zero values mean "no constraint".
type Filter struct {
	Date     Date   `json:"date,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsEmpty returns true if filter has no constraints
func (f Filter) IsEmpty() bool {
	return f.Date.IsZero() && strings.TrimSpace(f.Category) == ""
}

// String returns human-readable filter description
func (f Filter) String() string {
	if f.IsEmpty() {
		return "all"
	}
	parts := make([]string, 0, 2)
	if !f.Date.IsZero() {
		parts = append(parts, "date="+f.Date.String())
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		parts = append(parts, "category="+c)
	}
	return strings.Join(parts, ", ")
}
