package ops

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Export file names, written into ExportInput.Dir.
const (
	ExportJSONFile     = "snippets-export.json"
	ExportMarkdownFile = "snippets-export.md"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Format  string // required: json or markdown, case-insensitive
	Dir     string // optional, default: WorkDir; must be WorkDir or an allowed path
	WorkDir string // optional, default: process working directory
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Count  int    `json:"count"`
}

// NormalizeFormat trims and lowercases a format name.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// Export writes the full collection to a fixed-name file in Dir.
// An unsupported format fails before anything is loaded or written.
// Dir is checked by ValidatePath against WorkDir and cfg.AllowedPaths.
func Export(ctx context.Context, st store.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	format := NormalizeFormat(input.Format)

	var name string
	switch format {
	case FormatJSON:
		name = ExportJSONFile
	case FormatMarkdown:
		name = ExportMarkdownFile
	default:
		return nil, errors.NewUnsupportedFormat(strings.TrimSpace(input.Format))
	}

	if containsTraversal(input.Dir) {
		return nil, errors.NewInvalidRequest("dir must not contain directory traversal (..)")
	}
	dir := input.Dir
	if dir == "" {
		dir = input.WorkDir
	}
	exportPath, err := ValidatePath(filepath.Join(dir, name), PathCheckWrite, input.WorkDir, cfg)
	if err != nil {
		return nil, err
	}

	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	var data []byte
	if format == FormatJSON {
		data, err = snippet.Encode(snippets)
		if err != nil {
			return nil, errors.NewInternal(fmt.Errorf("encoding export: %w", err))
		}
	} else {
		data = []byte(snippet.Markdown(snippets))
	}

	if err := cancelled(ctx, "export"); err != nil {
		return nil, err
	}

	if err := store.WriteFileAtomic(exportPath, data, 0644); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}

	return &ExportOutput{
		Path:   exportPath,
		Format: format,
		Count:  len(snippets),
	}, nil
}
