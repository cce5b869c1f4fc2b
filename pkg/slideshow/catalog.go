package slideshow

import (
	"errors"
	"fmt"

	"photofolio-home/pkg/models"
)

// DefaultBackgroundColor is used for slides that do not name an accent color
const DefaultBackgroundColor = "bg-black"

var (
	// ErrEmptyCatalog is returned when a catalog has no slides
	ErrEmptyCatalog = errors.New("catalog has no slides")

	// ErrDuplicateSlideID is returned when two slides share an id
	ErrDuplicateSlideID = errors.New("duplicate slide id")

	// ErrMissingImage is returned when a slide has no image reference
	ErrMissingImage = errors.New("slide has no image")

	// ErrUnknownSlide is returned when a slide id is not part of the catalog
	ErrUnknownSlide = errors.New("unknown slide")
)

// Catalog is the fixed, ordered sequence of slides shown by every view.
// It is built once and never mutated, so it is safe to share between views.
type Catalog struct {
	slides []models.Slide
	byID   map[int]int
}

// NewCatalog validates slides and builds a catalog preserving their order
func NewCatalog(slides []models.Slide) (*Catalog, error) {
	if len(slides) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		slides: make([]models.Slide, len(slides)),
		byID:   make(map[int]int, len(slides)),
	}

	for i, slide := range slides {
		if _, exists := c.byID[slide.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSlideID, slide.ID)
		}
		if slide.Image == "" {
			return nil, fmt.Errorf("%w: slide %d", ErrMissingImage, slide.ID)
		}
		if slide.BackgroundColor == "" {
			slide.BackgroundColor = DefaultBackgroundColor
		}
		c.slides[i] = slide
		c.byID[slide.ID] = i
	}

	return c, nil
}

// Len returns the number of slides
func (c *Catalog) Len() int {
	return len(c.slides)
}

// Slides returns a copy of the slides in catalog order
func (c *Catalog) Slides() []models.Slide {
	out := make([]models.Slide, len(c.slides))
	copy(out, c.slides)
	return out
}

// At returns the slide at position i
func (c *Catalog) At(i int) models.Slide {
	return c.slides[i]
}

// First returns the first slide of the catalog
func (c *Catalog) First() models.Slide {
	return c.slides[0]
}

// IndexOf returns the catalog position of the slide with the given id
func (c *Catalog) IndexOf(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Get returns the slide with the given id
func (c *Catalog) Get(id int) (models.Slide, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Slide{}, fmt.Errorf("%w: %d", ErrUnknownSlide, id)
	}
	return c.slides[i], nil
}
