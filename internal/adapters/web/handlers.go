package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/immich-dupes/internal/adapters/immich"
	"github.com/bnema/immich-dupes/internal/application"
	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageReview = "review.html"
	pageSetup  = "setup.html"
	pageError  = "error.html"
)

type Handler struct {
	session *application.SessionStore
	groups  *application.GroupStore
	review  *application.ReviewService
	pages   map[string]*template.Template
	logger  *slog.Logger
}

type assetView struct {
	ID           string
	ThumbnailURL string
	LibraryURL   string
}

type reviewView struct {
	Found     bool
	Empty     bool
	Ref       string
	GroupID   string
	Position  int
	Total     int
	Assets    []assetView
	PrevURL   string
	NextURL   string
	FetchedAt string
	Notice    string
}

type setupView struct {
	Endpoint        string
	BaseURLOverride string
	HasAPIKey       bool
	Configured      bool
	Error           string
}

type errorView struct {
	Status  int
	Title   string
	Message string
}

func loadPages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"inc": func(n int) int { return n + 1 },
	}

	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{pageReview, pageSetup, pageError} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (h *Handler) ReviewPage(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, navigation.GroupRefParam)
	view := reviewView{
		Ref:    ref,
		Total:  h.groups.Len(),
		Notice: r.URL.Query().Get("notice"),
	}
	if fetchedAt := h.groups.FetchedAt(); !fetchedAt.IsZero() {
		view.FetchedAt = fetchedAt.Local().Format(time.DateTime)
	}

	status := http.StatusOK
	group, position, ok := h.groups.Resolve(ref)
	switch {
	case view.Total == 0:
		view.Empty = true
	case !ok:
		status = http.StatusNotFound
	default:
		view.Found = true
		view.GroupID = string(group.ID)
		view.Position = position
		view.Assets = h.assetViews(group)

		ordered := h.groups.Ordered()
		if position > 0 {
			view.PrevURL = navigation.Path(navigation.RouteDuplicateGroup, string(ordered[position-1].ID))
		}
		if position+1 < len(ordered) {
			view.NextURL = navigation.Path(navigation.RouteDuplicateGroup, string(ordered[position+1].ID))
		}
	}

	h.render(w, r, status, pageReview, view)
}

func (h *Handler) SetupPage(w http.ResponseWriter, r *http.Request) {
	snapshot := h.session.Snapshot()
	h.render(w, r, http.StatusOK, pageSetup, setupView{
		Endpoint:        snapshot.Endpoint,
		BaseURLOverride: snapshot.BaseURLOverride,
		HasAPIKey:       snapshot.APIKey != "",
		Configured:      snapshot.IsConfigured(),
	})
}

// SaveSetup stores the submitted session. A blank key keeps the stored one
// only while requests still go to the same origin, so the form never has to
// echo the credential back and the credential never follows a new server.
func (h *Handler) SaveSetup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}

	next := domain.Session{
		Endpoint:        strings.TrimSpace(r.PostForm.Get("endpoint")),
		APIKey:          strings.TrimSpace(r.PostForm.Get("api_key")),
		BaseURLOverride: strings.TrimSpace(r.PostForm.Get("base_url")),
	}

	current := h.session.Snapshot()
	reusedKey := false
	if next.APIKey == "" && current.APIKey != "" && sameOrigin(current, next) {
		next.APIKey = current.APIKey
		reusedKey = true
	}

	if problem := setupProblem(current, next, reusedKey); problem != "" {
		h.render(w, r, http.StatusUnprocessableEntity, pageSetup, setupView{
			Endpoint:        next.Endpoint,
			BaseURLOverride: next.BaseURLOverride,
			HasAPIKey:       reusedKey,
			Configured:      current.IsConfigured(),
			Error:           problem,
		})
		return
	}

	h.session.Set(r.Context(), next.Endpoint, next.APIKey, next.BaseURLOverride)
	redirect(w, r, navigation.RootPath)
}

func setupProblem(current domain.Session, next domain.Session, reusedKey bool) string {
	switch {
	case next.Endpoint == "":
		return "Both the API endpoint and the API key are required."
	case next.APIKey == "" && current.APIKey != "" && !reusedKey:
		return "Enter the API key again when the server changes."
	case next.APIKey == "":
		return "Both the API endpoint and the API key are required."
	default:
		return ""
	}
}

// sameOrigin reports whether both sessions send requests to the same origin.
func sameOrigin(a domain.Session, b domain.Session) bool {
	originA, err := resolvedOrigin(a)
	if err != nil {
		return false
	}
	originB, err := resolvedOrigin(b)
	if err != nil {
		return false
	}
	return originA == originB
}

func resolvedOrigin(s domain.Session) (string, error) {
	baseURL, err := s.ResolvedBaseURL()
	if err != nil {
		return "", err
	}
	return domain.Origin(baseURL)
}

func (h *Handler) ClearSetup(w http.ResponseWriter, r *http.Request) {
	h.session.Clear(r.Context())
	redirect(w, r, navigation.SetupPath)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.review.Refresh(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	redirect(w, r, withNotice(navigation.RootPath, fmt.Sprintf("Fetched %d duplicate groups.", count)))
}

func (h *Handler) RemoveGroup(w http.ResponseWriter, r *http.Request) {
	id := domain.GroupID(chi.URLParam(r, "id"))
	position := h.positionOf(id)

	h.groups.RemoveGroup(r.Context(), id)
	redirect(w, r, h.pathAfterRemoval(position))
}

func (h *Handler) ResolveGroup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}

	id := domain.GroupID(chi.URLParam(r, "id"))
	position := h.positionOf(id)

	keep := make([]domain.AssetID, 0, len(r.PostForm["keep"]))
	for _, value := range r.PostForm["keep"] {
		keep = append(keep, domain.AssetID(value))
	}

	resolution, err := h.review.Resolve(r.Context(), id, keep)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	notice := fmt.Sprintf("Kept %d, moved %d to trash.", len(resolution.Kept), len(resolution.Deleted))
	redirect(w, r, withNotice(h.pathAfterRemoval(position), notice))
}

func (h *Handler) DismissGroup(w http.ResponseWriter, r *http.Request) {
	id := domain.GroupID(chi.URLParam(r, "id"))
	position := h.positionOf(id)

	if _, err := h.review.Dismiss(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	redirect(w, r, withNotice(h.pathAfterRemoval(position), "Marked as not duplicates."))
}

func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id := domain.AssetID(chi.URLParam(r, "id"))

	body, contentType, err := h.review.Thumbnail(r.Context(), id)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		switch {
		case errors.As(err, &cfgErr), errors.Is(err, domain.ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		default:
			h.logger.Warn("thumbnail", "asset", id, "error", err)
			http.Error(w, "thumbnail unavailable", http.StatusBadGateway)
		}
		return
	}
	defer func() { _ = body.Close() }()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Debug("copy thumbnail", "asset", id, "error", err)
	}
}

func (h *Handler) assetViews(group domain.DuplicateGroup) []assetView {
	baseURL, err := h.session.ResolvedBaseURL()
	if err != nil {
		baseURL = ""
	}

	views := make([]assetView, 0, len(group.Assets))
	for _, asset := range group.Assets {
		view := assetView{
			ID:           string(asset),
			ThumbnailURL: "/assets/" + url.PathEscape(string(asset)) + "/thumbnail",
		}
		if baseURL != "" {
			view.LibraryURL = immich.AssetURL(baseURL, asset)
		}
		views = append(views, view)
	}
	return views
}

func (h *Handler) positionOf(id domain.GroupID) int {
	for i, group := range h.groups.Ordered() {
		if group.ID == id {
			return i
		}
	}
	return 0
}

// pathAfterRemoval points at the group that took the removed one's place.
func (h *Handler) pathAfterRemoval(position int) string {
	ordered := h.groups.Ordered()
	if len(ordered) == 0 {
		return navigation.RootPath
	}
	if position >= len(ordered) {
		position = len(ordered) - 1
	}
	return navigation.Path(navigation.RouteDuplicateGroup, string(ordered[position].ID))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		redirect(w, r, navigation.SetupPath)
	case errors.Is(err, domain.ErrGroupNotFound):
		h.renderError(w, r, http.StatusNotFound, "Group not found", err.Error())
	case errors.Is(err, domain.ErrAssetNotInGroup):
		h.renderError(w, r, http.StatusBadRequest, "Invalid selection", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		h.renderError(w, r, http.StatusBadGateway, "The media library rejected the API key", err.Error())
	default:
		h.logger.Warn("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
		h.renderError(w, r, http.StatusBadGateway, "The media library request failed", err.Error())
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, title string, message string) {
	h.render(w, r, status, pageError, errorView{Status: status, Title: title, Message: message})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("render page", "page", page, "request_id", RequestIDFrom(r.Context()), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

func withNotice(path string, notice string) string {
	return path + "?notice=" + url.QueryEscape(notice)
}
