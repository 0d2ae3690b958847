package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/fuzzy"
	"github.com/hpungsan/snip/internal/ops"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store   store.Store
	cfg     *config.Config
	matcher fuzzy.Matcher
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: st, cfg: cfg, matcher: fuzzy.New(cfg.SearchThreshold)}
}

// AddRequest represents the arguments for snippet_add.
type AddRequest struct {
	Title       string   `json:"title"`
	Code        string   `json:"code,omitempty"`
	Language    string   `json:"language,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SearchRequest represents the arguments for snippet_search.
type SearchRequest struct {
	Query string `json:"query"`
}

// ListRequest represents the arguments for snippet_list.
type ListRequest struct {
	Language string `json:"language,omitempty"`
	Category string `json:"category,omitempty"`
}

// GetRequest represents the arguments for snippet_get.
type GetRequest struct {
	ID int `json:"id"`
}

// ExportRequest represents the arguments for snippet_export.
type ExportRequest struct {
	Format string `json:"format"`
	Dir    string `json:"dir,omitempty"`
}

// HandleAdd handles the snippet_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Add(ctx, h.store, ops.AddInput{
		Title:       input.Title,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        snippet.CleanTags(input.Tags),
		Category:    input.Category,
		Description: input.Description,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the snippet_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.store, h.matcher, ops.SearchInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the snippet_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.store, ops.ListInput{
		Language: input.Language,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the snippet_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.store, ops.FetchInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the snippet_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.store, h.cfg, ops.ExportInput{
		Format: input.Format,
		Dir:    input.Dir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Details of INTERNAL errors are withheld; they may carry file paths or SQL.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var sErr *errors.SnipError
	if stderrors.As(err, &sErr) {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
