package ops

import (
	"context"
	"strings"
	"time"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/prompt"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// AddFields are the interactive questions for a new snippet, in order.
var AddFields = []prompt.Field{
	{Name: "title", Label: "Title", Required: true},
	{Name: "code", Label: "Code", Kind: prompt.Multiline},
	{Name: "language", Label: "Language", Default: snippet.DefaultLanguage},
	{Name: "tags", Label: "Tags (comma-separated)"},
	{Name: "category", Label: "Category", Default: snippet.DefaultCategory},
	{Name: "description", Label: "Description (optional)"},
}

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Title       string   // required
	Code        string
	Language    string   // default: "javascript"
	Tags        []string // trimmed, empties dropped
	Category    string   // default: "General"
	Description string
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	Snippet snippet.Snippet `json:"snippet"`
	Total   int             `json:"total"`
}

// AddInputFromAnswers maps answers collected for AddFields onto an AddInput.
func AddInputFromAnswers(answers map[string]string) AddInput {
	return AddInput{
		Title:       answers["title"],
		Code:        answers["code"],
		Language:    answers["language"],
		Tags:        snippet.ParseTags(answers["tags"]),
		Category:    answers["category"],
		Description: answers["description"],
	}
}

// Add appends a new snippet with the next sequential id and saves the collection.
func Add(ctx context.Context, st store.Store, input AddInput) (*AddOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	sn := snippet.Snippet{
		ID:          snippet.NextID(snippets),
		Title:       title,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        input.Tags,
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	sn.ApplyDefaults()

	snippets = append(snippets, sn)
	if err := save(ctx, st, snippets); err != nil {
		return nil, err
	}

	return &AddOutput{
		Snippet: sn,
		Total:   len(snippets),
	}, nil
}
