package components

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"photofolio-home/pkg/models"
)

const (
	// DefaultHeadline is the line above the tagline on the homepage
	DefaultHeadline = "damien pierre designs products & systems"

	// DefaultTagline is the large line of the homepage
	DefaultTagline = "to empower human agency."
)

// NavItems returns the main navigation with the named section marked active
func NavItems(active string) []models.NavItem {
	items := []models.NavItem{
		{Label: "home", Href: "/"},
		{Label: "projects", Href: "/projects"},
		{Label: "photofolio", Href: "/photofolio"},
		{Label: "about", Href: "/about"},
	}
	for i := range items {
		items[i].Active = items[i].Label == active
	}
	return items
}

// Home renders the homepage body for a slideshow state
func Home(home models.Home) g.Node {
	return Div(
		ID("slideshow"),
		Class("relative flex h-screen w-full flex-col overflow-hidden bg-black"),
		g.If(home.LiveURL != "", g.Attr("data-live-url", home.LiveURL)),

		Background(home.Current.Slide),
		Navbar(home.Nav),
		Headline(home.Headline, home.Tagline),

		Div(
			Class("relative z-10 px-8 py-6"),
			Div(
				Class("mx-auto flex max-w-7xl flex-col items-center gap-8"),
				Featured(home.Current.Slide),
				Navigator(home.Slides, home.Current),
			),
		),
	)
}

// Background renders the active slide's image over its accent color.
// The slide id keys the element so the client can cross-fade on change.
func Background(slide models.Slide) g.Node {
	return Div(
		g.Attr("data-role", "background"),
		g.Attr("data-slide-id", strconv.Itoa(slide.ID)),
		Class(fmt.Sprintf("absolute inset-0 %s kenburns", slide.BackgroundColor)),
		Img(
			Src(slide.Image),
			Alt(slide.Alt),
			Width("1920"),
			Height("1080"),
			Class("h-full w-full object-cover opacity-50"),
		),
		Div(Class("absolute inset-0 bg-black/30")),
	)
}

// Navbar renders the fixed top navigation
func Navbar(items []models.NavItem) g.Node {
	return Nav(
		Class("relative z-10 px-8 py-6"),
		Div(
			Class("mx-auto flex max-w-7xl items-center justify-between"),
			A(
				Href("/"),
				Class("text-2xl font-bold tracking-tighter text-white"),
				g.Text("dp."),
			),
			Div(
				Class("flex items-center gap-8"),
				g.Group(g.Map(items, func(item models.NavItem) g.Node {
					class := "text-sm font-medium text-white/70 hover:text-white"
					if item.Active {
						class = "text-sm font-medium text-white"
					}
					return A(Href(item.Href), Class(class), g.Text(item.Label))
				})),
			),
		),
	)
}

// Headline renders the centered headline block
func Headline(headline, tagline string) g.Node {
	return Div(
		Class("relative z-10 flex flex-1 items-center justify-center"),
		Div(
			Class("mx-auto max-w-7xl px-8 text-center"),
			H2(Class("mb-4 text-lg font-light text-white/70"), g.Text(headline)),
			P(Class("text-4xl font-light text-white"), g.Text(tagline)),
		),
	)
}

// Featured renders the featured project name and its call to action
func Featured(slide models.Slide) g.Node {
	href := "#"
	if slide.HasURL() {
		href = slide.URL
	}

	return g.Group([]g.Node{
		Div(
			Class("flex flex-col items-center gap-2"),
			Div(Class("h-px w-24 bg-white/20")),
			P(Class("text-sm font-light text-white/70"), g.Text("Featured Project:")),
			H3(
				g.Attr("data-role", "project-name"),
				Class("text-xl font-medium text-white fade-up"),
				g.Text(slide.ProjectName),
			),
		),
		A(
			g.Attr("data-role", "project-link"),
			Href(href),
			Class("group relative inline-flex items-center gap-2 rounded-full border border-white/20 px-6 py-2 text-sm text-white transition-colors hover:bg-white hover:text-black"),
			g.Text("View Project"),
			arrowIcon(),
		),
	})
}

// Navigator renders one button per slide; only the active one shows progress
func Navigator(slides []models.Slide, current models.Snapshot) g.Node {
	return Div(
		g.Attr("data-role", "navigator"),
		Class("flex items-center gap-4"),
		g.Group(g.Map(slides, func(slide models.Slide) g.Node {
			return Button(
				Type("button"),
				g.Attr("data-slide-id", strconv.Itoa(slide.ID)),
				g.Attr("aria-label", fmt.Sprintf("Go to slide %d", slide.ID)),
				Class("relative h-2 w-12 overflow-hidden rounded-full bg-white/20"),
				g.If(slide.ID == current.Slide.ID, ProgressBar(current.Progress)),
			)
		})),
	)
}

// ProgressBar renders the fill of the active navigator button
func ProgressBar(progress float64) g.Node {
	return Div(
		g.Attr("data-role", "progress"),
		Class("absolute left-0 top-0 h-full bg-white transition-all duration-100 ease-linear"),
		g.Attr("style", "width: "+FormatProgress(progress)),
	)
}

// FormatProgress formats a progress value as a CSS percentage
func FormatProgress(progress float64) string {
	return strconv.FormatFloat(progress, 'f', -1, 64) + "%"
}

func arrowIcon() g.Node {
	return g.El("svg",
		Class("size-4 transition-transform group-hover:translate-x-1"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("viewBox", "0 0 24 24"),
		g.El("path",
			g.Attr("stroke-linecap", "round"),
			g.Attr("stroke-linejoin", "round"),
			g.Attr("stroke-width", "2"),
			g.Attr("d", "M17 8l4 4m0 0l-4 4m4-4H3"),
		),
	)
}
