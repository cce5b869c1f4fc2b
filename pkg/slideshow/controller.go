package slideshow

import (
	"errors"
	"fmt"
	"time"

	"photofolio-home/pkg/models"
)

const (
	// DefaultDuration is how long a slide stays active before rotating
	DefaultDuration = 5 * time.Second

	// DefaultTickInterval is the cadence at which progress is updated
	DefaultTickInterval = 100 * time.Millisecond

	// MaxProgress is the progress value at which the next slide is shown
	MaxProgress = 100.0
)

// ErrInvalidTiming is returned when the duration and tick interval cannot drive a slideshow
var ErrInvalidTiming = errors.New("tick interval must be positive and not exceed the slide duration")

// Controller owns the slide selection and progress of a single view.
//
// Progress is kept as a count of ticks rather than an accumulated float so
// that a slide always rotates after exactly TicksPerSlide ticks.
type Controller struct {
	catalog       *Catalog
	index         int
	ticks         int
	ticksPerSlide int
	interval      time.Duration
}

// NewController returns a controller positioned on the first slide with no progress
func NewController(catalog *Catalog, duration, tickInterval time.Duration) (*Controller, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	ticks, err := TicksPerSlide(duration, tickInterval)
	if err != nil {
		return nil, err
	}

	return &Controller{
		catalog:       catalog,
		ticksPerSlide: ticks,
		interval:      tickInterval,
	}, nil
}

// TicksPerSlide returns how many ticks a slide stays active, rounding up
// when the duration is not a multiple of the interval
func TicksPerSlide(duration, tickInterval time.Duration) (int, error) {
	if tickInterval <= 0 || duration < tickInterval {
		return 0, fmt.Errorf("%w: duration=%s interval=%s", ErrInvalidTiming, duration, tickInterval)
	}
	ticks := int(duration / tickInterval)
	if duration%tickInterval != 0 {
		ticks++
	}
	return ticks, nil
}

// Advance activates the slide following the current one, wrapping to the first
func (c *Controller) Advance() {
	c.index = (c.index + 1) % c.catalog.Len()
	c.ticks = 0
}

// Select activates the slide with the given id and resets progress.
// Callers must only pass ids taken from the catalog; an unknown id panics.
func (c *Controller) Select(id int) {
	if err := c.TrySelect(id); err != nil {
		panic(fmt.Sprintf("slideshow: %v", err))
	}
}

// TrySelect is Select for ids that come from outside the process
func (c *Controller) TrySelect(id int) error {
	i, ok := c.catalog.IndexOf(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSlide, id)
	}
	c.index = i
	c.ticks = 0
	return nil
}

// Tick adds one step of progress. When the slide's time is used up it
// advances in the same tick and reports true.
func (c *Controller) Tick() bool {
	c.ticks++
	if c.ticks >= c.ticksPerSlide {
		c.Advance()
		return true
	}
	return false
}

// Active returns the active slide
func (c *Controller) Active() models.Slide {
	return c.catalog.At(c.index)
}

// Progress returns the elapsed fraction of the active slide in [0,100)
func (c *Controller) Progress() float64 {
	return MaxProgress * float64(c.ticks) / float64(c.ticksPerSlide)
}

// TicksPerSlide returns the number of ticks between automatic advances
func (c *Controller) TicksPerSlide() int {
	return c.ticksPerSlide
}

// TickInterval returns the cadence Tick is expected to be called at
func (c *Controller) TickInterval() time.Duration {
	return c.interval
}

// State returns the current state
func (c *Controller) State() models.SlideshowState {
	return models.SlideshowState{
		ActiveSlideID: c.Active().ID,
		Progress:      c.Progress(),
	}
}

// Snapshot returns the active slide together with the progress
func (c *Controller) Snapshot() models.Snapshot {
	return models.Snapshot{
		Slide:    c.Active(),
		Progress: c.Progress(),
	}
}
