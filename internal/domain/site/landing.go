package site

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"remodelsite/internal/domain/forms"
)

// LandingData is what varies per request on the landing page.
type LandingData struct {
	// AdSource comes from the src or utm_source query parameter.
	AdSource string
}

func LandingPage(d LandingData) g.Node {
	return Layout(
		PageConfig{},
		Navbar(),
		Hero(),
		Specialties(),
		Team(),
		TransformationsSection(),
		GallerySection(),
		CTA(),
		QuoteForm(d.AdSource),
		Lightbox(),
	)
}

// quoteButton opens the quote form and tags the lead with the call to action that opened it.
func quoteButton(label, source, class string) g.Node {
	return Button(
		Type("button"),
		Class(class),
		g.Attr("data-open-quote", ""),
		g.Attr("data-source", source),
		g.Text(label),
	)
}

func Hero() g.Node {
	return Section(
		ID("hero"),
		Class("hero"),
		Div(
			Class("container hero-grid"),
			Div(
				Class("hero-text"),
				H1(g.Text("Hi, I'm Travis")),
				P(Class("lead"), g.Text("Your trusted local general contractor in "), Span(Class("accent"), g.Text("Anaheim Hills"))),
				P(
					g.Text("My team specialize in "),
					Span(Class("accent"), g.Text("kitchen and bathroom remodeling")),
					g.Text(", with over "),
					Span(Class("accent"), g.Text("20 years")),
					g.Text(" of professional experience."),
				),
				Div(
					Class("hero-actions"),
					quoteButton("Get Free Quote", "Hero - Get Free Quote", "btn btn-primary"),
					A(Class("btn btn-ghost"), Href("#services"), g.Text("View Services")),
				),
			),
			Div(
				Class("hero-photo"),
				Img(Src("/static/img/contractor.webp"), Alt("Travis - "+BusinessName)),
			),
		),
	)
}

func Specialties() g.Node {
	cards := make([]g.Node, 0, len(Services))
	for i, s := range Services {
		cards = append(cards, serviceCard(i, s))
	}

	return Section(
		ID("services"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeading("Specialties",
				g.Text("Check out the two special services we offer. Yes, they're "),
				Span(Class("accent"), g.Text("real photos")),
				g.Text(" taken from projects we've done in Anaheim Hills or nearby Orange County areas."),
			),
			Div(Class("services-grid"), g.Group(cards)),
		),
	)
}

func serviceCard(index int, s Service) g.Node {
	slides := make([]g.Node, 0, len(s.Images))
	for i, src := range s.Images {
		slides = append(slides, Div(
			Class("carousel-slide"),
			Img(
				Src(src),
				Alt(fmt.Sprintf("%s - Image %d", s.Title, i+1)),
				Loading("lazy"),
				g.Attr("data-lightbox-group", s.Slug),
				g.Attr("data-lightbox-index", fmt.Sprint(i)),
			),
		))
	}

	return Div(
		ID(s.Slug),
		Class("service-card"),
		Div(
			Class("carousel"),
			g.Attr("data-carousel", fmt.Sprint(index)),
			g.Attr("data-loop", "true"),
			Div(Class("carousel-track"), g.Group(slides)),
			Button(Type("button"), Class("carousel-prev"), g.Attr("aria-label", "Previous"), g.Text("‹")),
			Button(Type("button"), Class("carousel-next"), g.Attr("aria-label", "Next"), g.Text("›")),
			Div(Class("carousel-pagination")),
		),
		Div(
			Class("service-body"),
			H3(g.Text(s.Title)),
			P(g.Text(s.Description)),
			Button(
				Type("button"),
				Class("btn btn-link"),
				g.Attr("data-open-lightbox", s.Slug),
				g.Text("View Photos"),
			),
		),
	)
}

func Team() g.Node {
	return Section(
		ID("team"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeading("My Team",
				g.Text("We are "),
				Span(Class("accent"), g.Text("fully licensed")),
				g.Text(", reliable, and always ready to deliver great work."),
			),
			Img(Class("team-photo"), Src("/static/img/construction-team.jpg"), Alt("Travis and his team"), Loading("lazy")),
		),
	)
}

func TransformationsSection() g.Node {
	sliders := make([]g.Node, 0, len(Transformations))
	for _, p := range Transformations {
		sliders = append(sliders, Div(
			Class("before-after"),
			g.Attr("data-before-after", ""),
			g.Attr("data-position", "40"),
			Img(Class("after"), Src(p.After), Alt("After - "+p.Title), Loading("lazy")),
			Img(Class("before"), Src(p.Before), Alt("Before - "+p.Title), Loading("lazy")),
			Div(Class("label label-before"), g.Text("BEFORE")),
			Div(Class("label label-after"), g.Text("AFTER")),
		))
	}

	return Section(
		ID("transformations"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeading("Transformations",
				g.Text("See the "),
				Span(Class("accent"), g.Text("Before & After")),
				g.Text(" photos that show how we turn outdated bathrooms into stunning modern spaces, crafted with care and detail."),
			),
			Div(Class("before-after-grid"), g.Group(sliders)),
		),
	)
}

func GallerySection() g.Node {
	tiles := make([]g.Node, 0, len(Gallery))
	for i, p := range Gallery {
		tiles = append(tiles, Div(
			Class("gallery-tile"),
			Img(
				Src(p.Src),
				Alt(p.Type+" Remodeling Project"),
				Loading("lazy"),
				g.Attr("data-lightbox-group", "gallery"),
				g.Attr("data-lightbox-index", fmt.Sprint(i)),
			),
		))
	}

	return Section(
		ID("gallery"),
		Class("section"),
		Div(
			Class("container"),
			sectionHeading("More Photos",
				g.Text("Let the "),
				Span(Class("accent"), g.Text("results")),
				g.Text(" speak for themselves with expert craftsmanship in every detail."),
			),
			Div(Class("gallery-grid"), g.Group(tiles)),
		),
	)
}

func CTA() g.Node {
	return Section(
		ID("contact"),
		Class("section cta"),
		Div(
			Class("container"),
			H2(g.Text("Ready to Transform Your Home?")),
			P(g.Text("Contact us today for a free consultation and quote on your next project.")),
			Div(
				Class("video"),
				IFrame(
					Src(ProcessVideo),
					Title("Bathroom Remodeling Process"),
					g.Attr("frameborder", "0"),
					g.Attr("allow", "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"),
					g.Attr("allowfullscreen"),
				),
			),
			Div(
				Class("cta-actions"),
				A(Class("btn btn-phone"), Href("tel:"+PhoneTel), g.Text(PhoneDisplay)),
				quoteButton("Request Quote", "CTA - Request Quote", "btn btn-primary"),
			),
			P(Class("license"), g.Text(License)),
		),
	)
}

// QuoteForm is the markup of the two step form. The site script drives the steps against
// the API; the hidden inputs carry the tags sent with the first step.
func QuoteForm(adSource string) g.Node {
	return Div(
		ID("quote-modal"),
		Class("modal"),
		g.Attr("aria-hidden", "true"),
		Form(
			ID("quote-form"),
			Class("quote-form"),
			g.Attr("data-step", "step1"),
			g.Attr("novalidate"),
			Input(Type("hidden"), Name("source"), Value("")),
			Input(Type("hidden"), Name("ad_source"), Value(adSource)),

			FieldSet(
				Class("step step1"),
				Legend(g.Text("Get Your Free Quote")),
				field("name", "Full Name", "text", "name"),
				field("email", "Email", "email", "email"),
				field("phone", "Phone", "tel", "tel"),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Next")),
			),

			FieldSet(
				Class("step step2"),
				g.Attr("hidden"),
				Legend(g.Text("Tell Us About Your Project")),
				selectField("project", "Project Interest", optionValues(forms.Projects)),
				selectField("budget", "Budget", optionValues(forms.Budgets)),
				radioGroup("financing", "Do you need financing?", optionValues(forms.FinancingOptions)),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Submit")),
			),

			Div(
				Class("step step3"),
				g.Attr("hidden"),
				H3(g.Text("Thank you!")),
				P(g.Text("Redirecting you to upload photos of your space...")),
			),
		),
	)
}

func Lightbox() g.Node {
	return Div(
		ID("lightbox"),
		Class("lightbox"),
		g.Attr("aria-hidden", "true"),
		Button(Type("button"), Class("lightbox-close"), g.Attr("aria-label", "Close"), g.Text("×")),
		Img(Class("lightbox-image"), Alt("")),
		Div(Class("lightbox-thumbnails")),
	)
}

func sectionHeading(title string, intro ...g.Node) g.Node {
	return Div(
		Class("section-heading"),
		H2(g.Text(title)),
		P(intro...),
	)
}

func field(name, label, typ, autocomplete string) g.Node {
	return Div(
		Class("field"),
		Label(For(name), g.Text(label)),
		Input(ID(name), Name(name), Type(typ), AutoComplete(autocomplete), Required()),
	)
}

func selectField(name, label string, options []string) g.Node {
	opts := []g.Node{Option(Value(""), g.Text("Select..."))}
	for _, o := range options {
		opts = append(opts, Option(Value(o), g.Text(o)))
	}
	return Div(
		Class("field"),
		Label(For(name), g.Text(label)),
		Select(ID(name), Name(name), Required(), g.Group(opts)),
	)
}

func radioGroup(name, label string, options []string) g.Node {
	radios := make([]g.Node, 0, len(options))
	for _, o := range options {
		radios = append(radios, Label(
			Class("radio"),
			Input(Type("radio"), Name(name), Value(o), Required()),
			g.Text(o),
		))
	}
	return FieldSet(
		Class("field"),
		Legend(g.Text(label)),
		g.Group(radios),
	)
}

func optionValues[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
