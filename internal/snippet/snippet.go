package snippet

import (
	"regexp"
	"strings"
	"time"
)

// Field defaults applied at creation and decode time.
const (
	DefaultLanguage = "javascript"
	DefaultCategory = "General"
)

// Snippet is one stored code sample with its metadata.
// JSON keys match the backing file format.
type Snippet struct {
	// ID is assigned as len(existing)+1 when the snippet is created
	ID int `json:"id"`

	// Title is required and never empty
	Title string `json:"title"`

	// Code is the snippet body, possibly multi-line
	Code string `json:"code"`

	// Language tags the code fence on Markdown export (default "javascript")
	Language string `json:"language"`

	// Tags are trimmed, non-empty tokens in input order
	Tags []string `json:"tags"`

	// Category groups snippets for listing (default "General")
	Category string `json:"category"`

	// Description is optional free text
	Description string `json:"description"`

	// CreatedAt is the creation time, serialized as RFC 3339 (ISO 8601)
	CreatedAt time.Time `json:"createdAt"`
}

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize trims, lowercases, and collapses internal whitespace to single spaces.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// ParseTags splits a comma-separated string into trimmed, non-empty tags.
// Always returns a non-nil slice so tags serialize as [].
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// CleanTags re-applies the ParseTags rules to an existing tag list.
func CleanTags(in []string) []string {
	tags := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ApplyDefaults fills empty language/category and cleans tags in place.
func (s *Snippet) ApplyDefaults() {
	s.Language = strings.TrimSpace(s.Language)
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	s.Category = strings.TrimSpace(s.Category)
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	s.Tags = CleanTags(s.Tags)
}

// TagList returns the tags joined by ", ".
func (s *Snippet) TagList() string {
	return strings.Join(s.Tags, ", ")
}

// DescriptionOrNone returns the description, or "None" when it is empty.
func (s *Snippet) DescriptionOrNone() string {
	if strings.TrimSpace(s.Description) == "" {
		return "None"
	}
	return s.Description
}

// NextID returns the id for a snippet appended to the collection.
// Ids are positional: existing id values are not consulted.
func NextID(snippets []Snippet) int {
	return len(snippets) + 1
}
