package site

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = BusinessName
	}
	if config.Description == "" {
		config.Description = "Kitchen and bathroom remodeling in Anaheim Hills and nearby Orange County, with over 20 years of experience."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Class("antialiased"),
				g.Group(content),
				Div(ID("toast"), Class("toast"), g.Attr("role", "status"), g.Attr("aria-live", "polite")),
				Script(Type("module"), Src("/static/js/site.js")),
			),
		),
	})
}

func Navbar() g.Node {
	return Nav(
		Class("navbar sticky"),
		Div(
			Class("container navbar-inner"),
			Div(
				Class("brand"),
				Div(Class("brand-name"), g.Text(BusinessName)),
				Div(Class("brand-tagline"), g.Text(Tagline)),
			),
			A(Class("btn btn-phone"), Href("tel:"+PhoneTel), Span(g.Text(PhoneDisplay))),
		),
	)
}
