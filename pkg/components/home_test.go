package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"photofolio-home/pkg/models"
)

var testSlides = []models.Slide{
	{ID: 1, Image: "https://example.com/1.jpg", Alt: "first", ProjectName: "Function Plotter Gizmo", BackgroundColor: "bg-purple-600", URL: "/projects/gizmo"},
	{ID: 2, Image: "https://example.com/2.jpg", Alt: "second", ProjectName: "Neural Network Explorer", BackgroundColor: "bg-blue-500"},
	{ID: 3, Image: "https://example.com/3.jpg", Alt: "third", ProjectName: "Quantum Visualizer", BackgroundColor: "bg-teal-500"},
}

func render(t *testing.T, node g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, node.Render(&b))
	return b.String()
}

func TestNavItems(t *testing.T) {
	items := NavItems("about")

	require.Len(t, items, 4)
	assert.Equal(t, []string{"home", "projects", "photofolio", "about"},
		[]string{items[0].Label, items[1].Label, items[2].Label, items[3].Label})
	assert.False(t, items[0].Active)
	assert.True(t, items[3].Active)
}

func TestHomeRendersActiveSlide(t *testing.T) {
	html := render(t, Home(models.Home{
		Slides:   testSlides,
		Current:  models.Snapshot{Slide: testSlides[1], Progress: 42},
		Nav:      NavItems("home"),
		Headline: DefaultHeadline,
		Tagline:  DefaultTagline,
		LiveURL:  "/ws",
	}))

	assert.Contains(t, html, `data-live-url="/ws"`)
	assert.Contains(t, html, `src="https://example.com/2.jpg"`)
	assert.Contains(t, html, `alt="second"`)
	assert.Contains(t, html, "bg-blue-500")
	assert.Contains(t, html, "Neural Network Explorer")
	assert.Contains(t, html, "to empower human agency.")
	assert.NotContains(t, html, "https://example.com/1.jpg")
}

func TestNavigatorShowsProgressOnActiveSlideOnly(t *testing.T) {
	html := render(t, Navigator(testSlides, models.Snapshot{Slide: testSlides[2], Progress: 36}))

	assert.Equal(t, 3, strings.Count(html, "<button"))
	assert.Equal(t, 1, strings.Count(html, `data-role="progress"`))
	assert.Contains(t, html, `aria-label="Go to slide 1"`)
	assert.Contains(t, html, `aria-label="Go to slide 3"`)
	assert.Contains(t, html, "width: 36%")

	active := strings.Index(html, `data-slide-id="3"`)
	bar := strings.Index(html, `data-role="progress"`)
	assert.Greater(t, bar, active)
}

func TestFeaturedLink(t *testing.T) {
	assert.Contains(t, render(t, Featured(testSlides[0])), `href="/projects/gizmo"`)
	assert.Contains(t, render(t, Featured(testSlides[1])), `href="#"`)
}

func TestNavbarMarksActiveItem(t *testing.T) {
	html := render(t, Navbar(NavItems("home")))

	assert.Contains(t, html, `<a href="/" class="text-sm font-medium text-white">home</a>`)
	assert.Contains(t, html, `<a href="/about" class="text-sm font-medium text-white/70 hover:text-white">about</a>`)
	assert.Contains(t, html, "dp.")
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "0%", FormatProgress(0))
	assert.Equal(t, "2%", FormatProgress(2))
	assert.Equal(t, "12.5%", FormatProgress(12.5))
}

func TestLayout(t *testing.T) {
	html := render(t, Layout(PageConfig{}, g.Text("body")))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>damien pierre</title>")
	assert.Contains(t, html, "/static/js/slideshow.js")
	assert.NotContains(t, html, "og:image")
}
