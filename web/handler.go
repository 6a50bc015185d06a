// Package web serves the read-only view of shared tasks.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/taskshare/taskshare/internal/logging"
	internalstrings "github.com/taskshare/taskshare/internal/strings"
	"github.com/taskshare/taskshare/sharelink"
	"github.com/taskshare/taskshare/todo"
)

// Resolver looks up the task behind a share code. ctx is the request
// context and is canceled when the client goes away.
type Resolver interface {
	Resolve(ctx context.Context, code string) (todo.SharedTask, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(ctx context.Context, code string) (todo.SharedTask, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, code string) (todo.SharedTask, error) {
	return f(ctx, code)
}

// Options configures the shared view handler.
type Options struct {
	Resolver Resolver
	Logger   logging.Logger

	// BaseURL is the public origin share links are built from. When empty,
	// the origin of each request is used.
	BaseURL string
}

// Handler serves shared tasks as HTML and JSON.
type Handler struct {
	resolver  Resolver
	logger    logging.Logger
	baseURL   string
	mux       *http.ServeMux
	templates *template.Template
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	handler := &Handler{
		resolver:  opts.Resolver,
		logger:    logger,
		baseURL:   internalstrings.TrimTrailingSlash(opts.BaseURL),
		templates: newTemplates(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+sharelink.PathPrefix+"{code}", handler.handleSharedPage)
	mux.HandleFunc("GET /api"+sharelink.PathPrefix+"{code}", handler.handleSharedJSON)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type pageData struct {
	Task     *todo.SharedTask
	ShareURL string
	Message  string
}

func (h *Handler) handleSharedPage(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	shared, status := h.lookup(r, code)

	data := pageData{}
	switch status {
	case http.StatusOK:
		data.Task = &shared
		data.ShareURL = sharelink.URL(h.requestBaseURL(r), code)
	case http.StatusNotFound:
		data.Message = "This shared task does not exist or is no longer shared."
	default:
		data.Message = "The shared task could not be loaded."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, "page", data); err != nil {
		h.logger.Error(r.Context(), "render shared task", "code", code, "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleSharedJSON(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	shared, status := h.lookup(r, code)

	switch status {
	case http.StatusOK:
		writeJSON(w, status, shared)
	case http.StatusNotFound:
		writeJSON(w, status, errorResponse{Error: "shared task not found"})
	default:
		writeJSON(w, status, errorResponse{Error: "internal error"})
	}
}

// lookup resolves code and maps the outcome to an HTTP status. Unknown,
// malformed, and dangling codes are all 404; the log records which.
func (h *Handler) lookup(r *http.Request, code string) (todo.SharedTask, int) {
	ctx := r.Context()
	if !sharelink.ValidCode(code) {
		h.logger.Info(ctx, "rejected malformed share code", "code", code)
		return todo.SharedTask{}, http.StatusNotFound
	}
	if h.resolver == nil {
		h.logger.Error(ctx, "no resolver configured")
		return todo.SharedTask{}, http.StatusInternalServerError
	}

	shared, err := h.resolver.Resolve(ctx, code)
	switch {
	case err == nil:
		h.logger.Debug(ctx, "served shared task", "code", code, "todo", shared.ID)
		return shared, http.StatusOK
	case errors.Is(err, todo.ErrDanglingShare):
		h.logger.Warn(ctx, "share code references a deleted task", "code", code, "error", err)
		return todo.SharedTask{}, http.StatusNotFound
	case errors.Is(err, todo.ErrNotFound):
		h.logger.Info(ctx, "unknown share code", "code", code)
		return todo.SharedTask{}, http.StatusNotFound
	default:
		h.logger.Error(ctx, "resolve share code", "code", code, "error", err)
		return todo.SharedTask{}, http.StatusInternalServerError
	}
}

func (h *Handler) requestBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
