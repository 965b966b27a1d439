package page

import (
	_ "embed"
	"strconv"
	"strings"
	"time"

	"github.com/kbc-construction/site/pkg/counter"
	"github.com/kbc-construction/site/pkg/fade"
	"github.com/kbc-construction/site/pkg/motion"
	"github.com/kbc-construction/site/pkg/render"
	"github.com/kbc-construction/site/pkg/site"
	"github.com/kbc-construction/site/pkg/stagger"
	"github.com/kbc-construction/site/pkg/ui"
	. "github.com/kbc-construction/site/pkg/vdom"
)

//go:embed site.css
var stylesheet string

const (
	// heroStep separates the hero blocks' fade delays.
	heroStep = 200 * time.Millisecond
	ctaDelay = 600 * time.Millisecond
)

// staggerStep maps a content step onto stagger options: unset keeps the
// default increment and an explicit zero reveals every child at once.
func staggerStep(d *time.Duration) time.Duration {
	switch {
	case d == nil:
		return 0
	case *d == 0:
		return stagger.NoStep
	default:
		return *d
	}
}

// Document builds the full page for c, registering its reveal regions on m.
// Scripts are left to the caller.
func Document(c *site.Content, m *ui.Mount) render.PageData {
	return render.PageData{
		Title: c.Company.Name,
		Meta: []render.MetaTag{
			{Name: "description", Content: c.Company.Description},
			{Property: "og:title", Content: c.Company.Name},
			{Property: "og:description", Content: c.Company.Description},
		},
		Links: []render.LinkTag{
			{Rel: "icon", Href: c.Company.Logo, Type: "image/png"},
		},
		Styles:         []string{stylesheet},
		NoscriptStyles: []string{ui.NoscriptCSS},
		Body:           Page(c, m),
	}
}

// Page composes the page body. Wrappers are created in document order so
// region ids are stable across builds of the same content.
func Page(c *site.Content, m *ui.Mount) *VNode {
	return Div(Class("page"),
		header(c),
		hero(c, m),
		statsBand(c, m),
		cardSection(c.Services, m, false),
		cardSection(c.Projects, m, true),
		videos(c, m),
		about(c, m),
		whyUs(c, m),
		contact(c, m),
		footer(c, m),
	)
}

func header(c *site.Content) *VNode {
	return Header(Class("site-header"),
		Div(Class("container", "header-row"),
			A(Class("brand"), Href("#home"),
				Img(Src(c.Company.Logo), Alt(c.Company.Name+" Logo"), Width(180), Height(100), Class("logo")),
				H1(Class("brand-name"), c.Company.Name),
			),
			Nav(Class("site-nav"), AriaLabel("Main"),
				Range(c.Nav, func(n site.NavItem, _ int) *VNode {
					return A(Href("#"+n.Anchor), n.Label)
				}),
			),
			A(Class("btn", "btn-primary"), Href("#contact"), "Get Quote"),
		),
	)
}

func hero(c *site.Content, m *ui.Mount) *VNode {
	h := c.Hero
	delay := func(i int) fade.Options {
		return fade.Options{Delay: time.Duration(i) * heroStep}
	}

	return Section(ID("home"), Class("hero"), Data("carousel", strconv.Itoa(len(h.Slides))),
		Div(Class("hero-slides"),
			Range(h.Slides, func(s site.Slide, i int) *VNode {
				return Div(Class("hero-slide"), Data("slide", strconv.Itoa(i)), Data("active", strconv.FormatBool(i == 0)),
					Img(Src(s.Src), Alt(s.Alt), AttrIf(i > 0, Loading("lazy"))),
				)
			}),
		),
		Div(Class("container", "hero-content"),
			m.FadeIn(delay(1), Div(Class("badge"), Span(h.Badge))),
			m.FadeIn(delay(2), H1(Class("hero-title"),
				Span(Class("hero-headline"), h.Headline),
				Br(),
				Span(Class("hero-highlight"), h.Highlight),
			)),
			m.FadeIn(delay(3), P(Class("hero-tagline"), h.Tagline)),
			m.FadeIn(delay(4), P(Class("hero-intro"), h.Intro)),
			m.FadeIn(delay(5), Div(Class("hero-actions"),
				A(Class("btn", "btn-primary"), Href("#projects"), h.PrimaryCTA),
				A(Class("btn", "btn-ghost"), Href("tel:"+dialable(c.Company.Phone)),
					h.SecondaryCTA, " ", Span(Class("accent"), c.Company.Phone),
				),
			)),
			m.FadeIn(delay(6), Div(Class("hero-stats"),
				Range(h.Stats, func(s site.Stat, _ int) *VNode {
					return statBlock(m, s)
				}),
			)),
		),
		Div(Class("hero-dots"), Role("tablist"),
			Range(h.Slides, func(s site.Slide, i int) *VNode {
				return Button(Type("button"), Class("hero-dot"), Data("slide-dot", strconv.Itoa(i)),
					Data("active", strconv.FormatBool(i == 0)), AriaLabel("Show slide "+strconv.Itoa(i+1)))
			}),
		),
	)
}

func statBlock(m *ui.Mount, s site.Stat) *VNode {
	return Div(Class("stat"),
		Div(Class("stat-value"), m.Counter(counter.Options{End: s.End, Suffix: s.Suffix}, "")),
		P(Class("stat-label"), s.Label),
	)
}

func statsBand(c *site.Content, m *ui.Mount) *VNode {
	b := c.StatsBand
	return Section(Class("stats-band"), backdrop(b.Background),
		Div(Class("container"),
			m.Stagger(stagger.Options{Step: staggerStep(b.Step), Class: "stats-grid"},
				Range(b.Stats, func(s site.Stat, _ int) *VNode {
					return statBlock(m, s)
				}),
			),
		),
	)
}

func sectionHeading(m *ui.Mount, title, intro string) *VNode {
	var lead *VNode
	if intro != "" {
		lead = P(intro)
	}
	return m.FadeIn(fade.Options{Class: "section-heading"}, H2(title), lead)
}

func cardSection(s site.CardSection, m *ui.Mount, withCTA bool) *VNode {
	return Section(ID(s.ID), Class("section"),
		Div(Class("container"),
			sectionHeading(m, s.Title, s.Intro),
			m.Stagger(stagger.Options{Step: staggerStep(s.Step), Class: "card-grid"},
				Range(s.Items, func(card site.Card, _ int) *VNode {
					return cardNode(card)
				}),
			),
			callToAction(m, withCTA && s.CTA != "", A(Class("btn", "btn-primary"), Href("#contact"), s.CTA)),
		),
	)
}

// callToAction registers its fade region only when the button is shown, so
// every mounted region exists in the rendered page.
func callToAction(m *ui.Mount, show bool, button *VNode) *VNode {
	if !show {
		return nil
	}
	return m.FadeIn(fade.Options{Delay: ctaDelay, Class: "section-cta"}, button)
}

func cardNode(card site.Card) *VNode {
	alt := card.Alt
	if alt == "" {
		alt = card.Title
	}
	return Article(Class("card"),
		If(card.Image != "", Div(Class("card-media"), Img(Src(card.Image), Alt(alt), Loading("lazy")))),
		Div(Class("card-body"),
			H3(card.Title),
			P(card.Description),
			If(card.Location != "", Span(Class("tag"), card.Location)),
		),
	)
}

func videos(c *site.Content, m *ui.Mount) *VNode {
	v := c.Videos
	return Section(Class("section", "section-dark"),
		Div(Class("container"),
			sectionHeading(m, v.Title, v.Intro),
			m.Stagger(stagger.Options{Step: staggerStep(v.Step), Class: "video-grid"},
				Range(v.Items, func(item site.Video, _ int) *VNode {
					return Div(Class("video-card"),
						Video(Class("video"), Controls(), MutedAttr(), Loop(), Playsinline(), Preload("metadata"),
							AttrIf(item.Poster != "", Poster(item.Poster)),
							Source(Src(item.Src), Type("video/mp4")),
							"Your browser does not support the video tag.",
						),
						H3(item.Title),
						P(item.Description),
					)
				}),
			),
		),
	)
}

func about(c *site.Content, m *ui.Mount) *VNode {
	a := c.About
	return Section(ID(a.ID), Class("section"),
		Div(Class("container"),
			sectionHeading(m, a.Title, a.Intro),
			Div(Class("split"),
				m.FadeIn(fade.Options{Direction: motion.Left},
					H3(a.StoryTitle),
					Range(a.Story, func(p string, _ int) *VNode { return P(p) }),
				),
				m.FadeIn(fade.Options{Direction: motion.Right, Class: "split-media"},
					Img(Src(a.Image), Alt(a.ImageAlt), Width(600), Height(400), Loading("lazy")),
				),
			),
			m.Stagger(stagger.Options{Step: staggerStep(a.Step), Class: "card-grid"},
				Range(a.Pillars, func(card site.Card, _ int) *VNode {
					return cardNode(card)
				}),
			),
		),
	)
}

func whyUs(c *site.Content, m *ui.Mount) *VNode {
	w := c.WhyUs
	step := heroStep
	if w.Step != nil {
		step = *w.Step
	}
	return Section(Class("section", "section-muted"),
		Div(Class("container", "split"),
			m.FadeIn(fade.Options{Direction: motion.Left},
				H2(w.Title),
				P(w.Intro),
				Ul(Class("reasons"),
					Range(w.Reasons, func(r site.Card, i int) *VNode {
						return Li(m.FadeIn(fade.Options{Delay: time.Duration(i) * step, Class: "reason"},
							H3(r.Title),
							P(r.Description),
						))
					}),
				),
			),
			m.FadeIn(fade.Options{Direction: motion.Right, Class: "split-media"},
				Img(Src(w.Image), Alt(w.ImageAlt), Width(600), Height(500), Loading("lazy")),
			),
		),
	)
}

func contact(c *site.Content, m *ui.Mount) *VNode {
	ct := c.Contact
	return Section(ID(ct.ID), Class("section", "contact"), backdrop(ct.Background),
		Div(Class("container"),
			sectionHeading(m, ct.Title, ct.Intro),
			m.Stagger(stagger.Options{Step: staggerStep(ct.Step), Class: "contact-grid"},
				Range(ct.Channels, func(ch site.Channel, _ int) *VNode {
					return Div(Class("contact-card"),
						H3(ch.Title),
						P(lines(ch.Info)),
					)
				}),
			),
			callToAction(m, ct.CTA != "", A(Class("btn", "btn-light"), Href("tel:"+dialable(c.Company.Phone)), ct.CTA)),
		),
	)
}

func footer(c *site.Content, m *ui.Mount) *VNode {
	f := c.Footer
	return Footer(Class("site-footer"),
		Div(Class("container"),
			m.Stagger(stagger.Options{Step: staggerStep(f.Step), Class: "footer-grid"},
				Div(Class("footer-brand"),
					Img(Src(c.Company.Logo), Alt(c.Company.Name+" Logo"), Width(100), Height(50), Loading("lazy")),
					H3(c.Company.Name),
					P(f.Blurb),
				),
				Range(f.Columns, func(col site.FooterColumn, _ int) *VNode {
					return Div(Class("footer-column"),
						H4(col.Title),
						Ul(Range(col.Links, func(link string, _ int) *VNode {
							if col.Plain {
								return Li(Span(link))
							}
							return Li(A(Href("#"), link))
						})),
					)
				}),
			),
			P(Class("copyright"), c.Company.Copyright),
		),
	)
}

// backdrop sets a section background image through a CSS custom property.
func backdrop(src string) Attr {
	if src == "" {
		return Attr{}
	}
	return StyleAttr("--backdrop: url('" + src + "');")
}

// lines splits text on newlines and joins the parts with <br>.
func lines(s string) *VNode {
	parts := strings.Split(s, "\n")
	nodes := make([]*VNode, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			nodes = append(nodes, Br())
		}
		nodes = append(nodes, Text(p))
	}
	return Fragment(nodes)
}

// dialable strips spaces from a phone number for tel: links.
func dialable(phone string) string {
	return strings.ReplaceAll(phone, " ", "")
}
