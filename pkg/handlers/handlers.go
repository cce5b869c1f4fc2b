package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"photofolio-home/pkg/components"
	"photofolio-home/pkg/logger"
	"photofolio-home/pkg/models"
	"photofolio-home/pkg/services"
)

// LivePath is where the homepage connects for live slideshow updates
const LivePath = "/ws"

// Options carries optional settings of the Handler
type Options struct {
	Logger    *zap.Logger
	PublicDir string

	// SelectRate and SelectBurst throttle select messages per live connection
	SelectRate  rate.Limit
	SelectBurst int
}

// Handler serves the homepage, the live view and the JSON API
type Handler struct {
	svc      *services.Service
	pages    *SectionPages
	log      *zap.Logger
	upgrader websocket.Upgrader

	publicDir   string
	selectRate  rate.Limit
	selectBurst int
}

// New creates a handler for the service. pages may be nil, in which case
// section pages are not served.
func New(svc *services.Service, pages *SectionPages, opts Options) *Handler {
	if opts.SelectRate == 0 {
		opts.SelectRate = rate.Every(100 * time.Millisecond)
	}
	if opts.SelectBurst == 0 {
		opts.SelectBurst = 5
	}

	return &Handler{
		svc:   svc,
		pages: pages,
		log:   logger.Scope(opts.Logger, "http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		publicDir:   opts.PublicDir,
		selectRate:  opts.SelectRate,
		selectBurst: opts.SelectBurst,
	}
}

// Router builds the chi router with every route of the site
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.HomeHandler)
	r.Get(LivePath, h.LiveHandler)
	r.Get("/health", h.HealthHandler)
	r.Method(http.MethodGet, "/metrics", h.svc.Metrics().Handler())

	if h.pages != nil {
		for _, name := range h.pages.Names() {
			r.Get("/"+name, h.SectionHandler(name))
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/slides", h.SlidesHandler)
		r.Post("/views", h.CreateViewHandler)
		r.Get("/views/{id}", h.GetViewHandler)
		r.Post("/views/{id}/select", h.SelectHandler)
		r.Delete("/views/{id}", h.DeleteViewHandler)
	})

	if h.publicDir != "" {
		fileServer := http.FileServer(http.Dir(h.publicDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	return r
}

// HomeHandler renders the homepage in the state every new view starts from
func (h *Handler) HomeHandler(w http.ResponseWriter, _ *http.Request) {
	slides := h.svc.Slides()
	current := h.svc.InitialSnapshot()

	page := components.Layout(
		components.PageConfig{OGImage: current.Slide.Image},
		components.Home(models.Home{
			Slides:   slides,
			Current:  current,
			Nav:      components.NavItems("home"),
			Headline: components.DefaultHeadline,
			Tagline:  components.DefaultTagline,
			LiveURL:  LivePath,
		}),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		h.log.Error("failed to render homepage", zap.Error(err))
	}
}

// HealthHandler reports that the server is up
func (h *Handler) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.log.Debug("failed to write response", zap.Error(err))
	}
}
