package models

// Slide represents one entry of the homepage slideshow
type Slide struct {
	ID              int    `json:"id"`
	Image           string `json:"image"`
	Alt             string `json:"alt"`
	ProjectName     string `json:"projectName"`
	BackgroundColor string `json:"backgroundColor"`
	URL             string `json:"url,omitempty"`
}

// HasURL reports whether the slide links to a project page
func (s Slide) HasURL() bool {
	return s.URL != ""
}

// SlideshowState is the per-view state of the slideshow
type SlideshowState struct {
	ActiveSlideID int     `json:"activeSlideId"`
	Progress      float64 `json:"progress"`
}

// Snapshot pairs the active slide with the current progress
type Snapshot struct {
	Slide    Slide   `json:"slide"`
	Progress float64 `json:"progress"`
}

// NavItem represents an entry of the main navigation bar
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Home represents the homepage render data
type Home struct {
	Slides   []Slide
	Current  Snapshot
	Nav      []NavItem
	Headline string
	Tagline  string
	LiveURL  string
}

