package ops

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path    string // required: a .json file directly in WorkDir or an allowed path
	WorkDir string // optional, default: process working directory
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int   `json:"imported"`
	Total    int   `json:"total"`
	IDs      []int `json:"ids"`
}

// Import appends every record of a JSON export to the collection.
// Records get fresh sequential ids; other fields, createdAt included, are kept.
// The file is validated in full before anything is saved.
func Import(ctx context.Context, st store.Store, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	path, err := ValidatePath(input.Path, PathCheckRead, input.WorkDir, cfg)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewFileNotFound(input.Path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	incoming, err := snippet.Decode(data)
	if err == nil {
		err = snippet.Validate(incoming)
	}
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid import file %s: %v", path, err))
	}

	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(incoming))
	for _, sn := range incoming {
		sn.ID = snippet.NextID(snippets)
		snippets = append(snippets, sn)
		ids = append(ids, sn.ID)
	}

	if len(incoming) > 0 {
		if err := save(ctx, st, snippets); err != nil {
			return nil, err
		}
	}

	return &ImportOutput{
		Imported: len(incoming),
		Total:    len(snippets),
		IDs:      ids,
	}, nil
}
