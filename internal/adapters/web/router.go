package web

import (
	"log/slog"

	"github.com/bnema/immich-dupes/internal/application"
	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/go-chi/chi/v5"
)

// NewRouter creates the chi router. Page routes come from navigation.Routes
// so the CLI and the browser share one route table.
func NewRouter(
	session *application.SessionStore,
	groups *application.GroupStore,
	review *application.ReviewService,
	logger *slog.Logger,
) (*chi.Mux, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pages, err := loadPages()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		session: session,
		groups:  groups,
		review:  review,
		pages:   pages,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	r.Use(CrossOrigin(logger))
	r.Use(NavigationGuard(session))

	for _, route := range navigation.Routes {
		switch route.Name {
		case navigation.RouteSetup:
			r.Get(route.Pattern, h.SetupPage)
			r.Post(route.Pattern, h.SaveSetup)
		case navigation.RouteDuplicateGroup:
			r.Get(route.Pattern, h.ReviewPage)
		}
	}

	r.Post("/setup/clear", h.ClearSetup)

	r.Route("/groups", func(r chi.Router) {
		r.Post("/refresh", h.Refresh)
		r.Post("/{id}/remove", h.RemoveGroup)
		r.Post("/{id}/resolve", h.ResolveGroup)
		r.Post("/{id}/dismiss", h.DismissGroup)
	})

	r.Get("/assets/{id}/thumbnail", h.Thumbnail)

	return r, nil
}
