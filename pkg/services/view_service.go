package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"photofolio-home/pkg/config"
	"photofolio-home/pkg/logger"
	"photofolio-home/pkg/metrics"
	"photofolio-home/pkg/models"
	"photofolio-home/pkg/scheduler"
	"photofolio-home/pkg/slideshow"
)

// ErrViewNotFound is returned for unknown or expired view ids
var ErrViewNotFound = errors.New("view not found")

// Options carries optional collaborators of the Service
type Options struct {
	Scheduler scheduler.Scheduler
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Service owns the slide catalog and the views mounted against it
type Service struct {
	config  *config.Config
	catalog *slideshow.Catalog
	sched   scheduler.Scheduler
	metrics *metrics.Metrics
	log     *zap.Logger

	// views holds API views; expiry or deletion unmounts them
	views   *cache.Cache
	mounted atomic.Int64
}

// NewService creates a service for the catalog. Missing options get wall clock
// scheduling, a private metrics registry and a no-op logger.
func NewService(cfg *config.Config, catalog *slideshow.Catalog, opts Options) *Service {
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.NewTickerScheduler()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	s := &Service{
		config:  cfg,
		catalog: catalog,
		sched:   opts.Scheduler,
		metrics: opts.Metrics,
		log:     logger.Scope(opts.Logger, "views"),
		views:   cache.New(cfg.ViewTTL, janitorInterval(cfg.ViewTTL)),
	}

	s.views.OnEvicted(func(id string, item interface{}) {
		if view, ok := item.(*slideshow.View); ok {
			view.Unmount()
		}
	})

	return s
}

func janitorInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Catalog returns the slide catalog
func (s *Service) Catalog() *slideshow.Catalog {
	return s.catalog
}

// Slides returns the slides in catalog order
func (s *Service) Slides() []models.Slide {
	return s.catalog.Slides()
}

// GetSlide returns a slide by id
func (s *Service) GetSlide(id int) (models.Slide, error) {
	return s.catalog.Get(id)
}

// Metrics returns the collectors the service reports to
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// TickInterval returns the cadence views tick at
func (s *Service) TickInterval() time.Duration {
	return s.config.TickInterval
}

// NewController returns a controller in its initial state
func (s *Service) NewController() (*slideshow.Controller, error) {
	return slideshow.NewController(s.catalog, s.config.SlideDuration, s.config.TickInterval)
}

// InitialSnapshot is the state every freshly mounted view starts from
func (s *Service) InitialSnapshot() models.Snapshot {
	return models.Snapshot{Slide: s.catalog.First(), Progress: 0}
}

// NewView creates an unmounted view wired to the service's metrics and logs.
// The caller owns it and must unmount it.
func (s *Service) NewView(opts ...slideshow.ViewOption) (*slideshow.View, error) {
	ctrl, err := s.NewController()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	hooks := []slideshow.ViewOption{
		slideshow.WithAdvanceHook(func(models.Slide) {
			s.metrics.Advances.Inc()
		}),
		slideshow.WithSelectHook(func(slide models.Slide) {
			s.metrics.Selections.Inc()
			s.log.Debug("slide selected", zap.String("view", id), zap.Int("slide", slide.ID))
		}),
		slideshow.WithLifecycleHooks(s.viewMounted, s.viewUnmounted),
	}

	return slideshow.NewView(id, ctrl, s.sched, append(hooks, opts...)...), nil
}

func (s *Service) viewMounted(id string) {
	n := s.mounted.Add(1)
	s.metrics.Mounts.Inc()
	s.metrics.MountedViews.Set(float64(n))
	s.log.Debug("view mounted", zap.String("view", id), zap.Int64("mounted", n))
}

func (s *Service) viewUnmounted(id string) {
	n := s.mounted.Add(-1)
	s.metrics.Unmounts.Inc()
	s.metrics.MountedViews.Set(float64(n))
	s.log.Debug("view unmounted", zap.String("view", id), zap.Int64("mounted", n))
}

// MountView creates and mounts a view held by the service until it is
// unmounted or stays idle for longer than the view TTL
func (s *Service) MountView() (*slideshow.View, error) {
	view, err := s.NewView()
	if err != nil {
		return nil, err
	}
	if err := view.Mount(); err != nil {
		return nil, err
	}

	s.views.Set(view.ID(), view, cache.DefaultExpiration)
	return view, nil
}

// GetView returns a held view and extends its lifetime
func (s *Service) GetView(id string) (*slideshow.View, error) {
	item, found := s.views.Get(id)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	view := item.(*slideshow.View)
	s.views.Set(id, view, cache.DefaultExpiration)
	return view, nil
}

// SelectSlide activates a slide on a held view
func (s *Service) SelectSlide(viewID string, slideID int) (models.Snapshot, error) {
	view, err := s.GetView(viewID)
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := view.Select(slideID); err != nil {
		return models.Snapshot{}, err
	}
	return view.Snapshot(), nil
}

// UnmountView stops and forgets a held view
func (s *Service) UnmountView(id string) error {
	if _, found := s.views.Get(id); !found {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	s.views.Delete(id)
	return nil
}

// MountedViews returns the number of views currently ticking, live and API
func (s *Service) MountedViews() int {
	return int(s.mounted.Load())
}

// HeldViews returns the number of API views held by the service
func (s *Service) HeldViews() int {
	return s.views.ItemCount()
}

// Close unmounts every held view
func (s *Service) Close() {
	for id := range s.views.Items() {
		s.views.Delete(id)
	}
}
