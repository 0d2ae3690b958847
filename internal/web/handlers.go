package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hpungsan/snip/internal/fuzzy"
	"github.com/hpungsan/snip/internal/ops"
	"github.com/hpungsan/snip/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    store.Store
	matcher  fuzzy.Matcher
	renderer *Renderer
}

// HandleList handles GET /snippets, optionally filtered by lang and category.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Language: r.URL.Query().Get("lang"),
		Category: r.URL.Query().Get("category"),
	}

	result, err := ops.List(r.Context(), h.store, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: h.renderer.page("Snippets", "snippets"),
		Items:    result.Items,
		Total:    result.Total,
		Language: strings.TrimSpace(input.Language),
		Category: strings.TrimSpace(input.Category),
	})
}

// HandleSearch handles GET /snippets/search?q=. An empty query shows the form only.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := SearchPageData{
		PageData: h.renderer.page("Search", "search"),
		Query:    query,
		HasQuery: query != "",
	}

	if query == "" {
		h.renderer.renderPage(w, "search", data)
		return
	}

	result, err := ops.Search(r.Context(), h.store, h.matcher, ops.SearchInput{Query: query})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	data.Items = result.Items
	h.renderer.renderPage(w, "search", data)
}

// HandleDetail handles GET /snippets/{id}, rendering the snippet as Markdown.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := ops.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	sn, err := ops.Fetch(r.Context(), h.store, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, sn)
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData:     h.renderer.page(sn.Title, "snippets"),
		Snippet:      sn,
		RenderedHTML: renderMarkdown(sn.MarkdownSection()),
	})
}
