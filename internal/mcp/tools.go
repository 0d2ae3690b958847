package mcp

import "github.com/mark3labs/mcp-go/mcp"

var addToolDef = mcp.NewTool("snippet_add",
	mcp.WithDescription("Save a new code snippet. Returns the stored snippet with its assigned id."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Short title for the snippet")),
	mcp.WithString("code", mcp.Description("Snippet body; may span multiple lines")),
	mcp.WithString("language", mcp.Description("Language name (default: javascript)")),
	mcp.WithArray("tags", mcp.Description("Tags for search"), mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("category", mcp.Description("Category for grouping (default: General)")),
	mcp.WithString("description", mcp.Description("Optional free-text description")),
)

var searchToolDef = mcp.NewTool("snippet_search",
	mcp.WithDescription("Fuzzy-search snippets by title, code, tags, description, language, and category. Results are ranked best first."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text; small typos are tolerated")),
)

var listToolDef = mcp.NewTool("snippet_list",
	mcp.WithDescription("List snippets in insertion order, optionally filtered by exact, case-insensitive language and category."),
	mcp.WithString("language", mcp.Description("Only snippets in this language")),
	mcp.WithString("category", mcp.Description("Only snippets in this category")),
)

var getToolDef = mcp.NewTool("snippet_get",
	mcp.WithDescription("Fetch one snippet by id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Snippet id")),
)

var exportToolDef = mcp.NewTool("snippet_export",
	mcp.WithDescription("Export all snippets to snippets-export.json or snippets-export.md."),
	mcp.WithString("format", mcp.Required(), mcp.Description("json or markdown"), mcp.Enum("json", "markdown")),
	mcp.WithString("dir", mcp.Description("Directory to write into: the server working directory (default) or an allowed_paths entry")),
)
