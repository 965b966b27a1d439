package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is wrapped by every content validation failure.
var ErrInvalidContent = errors.New("site: invalid content")

//go:embed content.yaml
var defaultContent []byte

// Content is everything the page displays.
type Content struct {
	Company   Company      `yaml:"company"`
	Nav       []NavItem    `yaml:"nav"`
	Hero      Hero         `yaml:"hero"`
	StatsBand StatsBand    `yaml:"stats_band"`
	Services  CardSection  `yaml:"services"`
	Projects  CardSection  `yaml:"projects"`
	Videos    VideoSection `yaml:"videos"`
	About     About        `yaml:"about"`
	WhyUs     WhyUs        `yaml:"why_us"`
	Contact   Contact      `yaml:"contact"`
	Footer    Footer       `yaml:"footer"`
}

type Company struct {
	Name        string `yaml:"name"`
	ShortName   string `yaml:"short_name"`
	Logo        string `yaml:"logo"`
	Phone       string `yaml:"phone"`
	Email       string `yaml:"email"`
	Description string `yaml:"description"`
	Copyright   string `yaml:"copyright"`
}

type NavItem struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

type Hero struct {
	Badge        string  `yaml:"badge"`
	Headline     string  `yaml:"headline"`
	Highlight    string  `yaml:"highlight"`
	Tagline      string  `yaml:"tagline"`
	Intro        string  `yaml:"intro"`
	PrimaryCTA   string  `yaml:"primary_cta"`
	SecondaryCTA string  `yaml:"secondary_cta"`
	Slides       []Slide `yaml:"slides"`
	Stats        []Stat  `yaml:"stats"`
}

type Slide struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

// Stat is an animated counter with a caption.
type Stat struct {
	End    int    `yaml:"end"`
	Suffix string `yaml:"suffix"`
	Label  string `yaml:"label"`
}

type StatsBand struct {
	Background string         `yaml:"background"`
	Step       *time.Duration `yaml:"step"`
	Stats      []Stat         `yaml:"stats"`
}

// Card is a titled block used by services, projects and the about pillars.
type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Alt         string `yaml:"alt"`
	Location    string `yaml:"location"`
}

type CardSection struct {
	ID    string         `yaml:"id"`
	Title string         `yaml:"title"`
	Intro string         `yaml:"intro"`
	Step  *time.Duration `yaml:"step"`
	CTA   string         `yaml:"cta"`
	Items []Card         `yaml:"items"`
}

type Video struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Src         string `yaml:"src"`
	Poster      string `yaml:"poster"`
}

type VideoSection struct {
	Title string         `yaml:"title"`
	Intro string         `yaml:"intro"`
	Step  *time.Duration `yaml:"step"`
	Items []Video        `yaml:"items"`
}

type About struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title"`
	Intro      string         `yaml:"intro"`
	StoryTitle string         `yaml:"story_title"`
	Story      []string       `yaml:"story"`
	Image      string         `yaml:"image"`
	ImageAlt   string         `yaml:"image_alt"`
	Step       *time.Duration `yaml:"step"`
	Pillars    []Card         `yaml:"pillars"`
}

type WhyUs struct {
	Title    string         `yaml:"title"`
	Intro    string         `yaml:"intro"`
	Image    string         `yaml:"image"`
	ImageAlt string         `yaml:"image_alt"`
	Step     *time.Duration `yaml:"step"`
	Reasons  []Card         `yaml:"reasons"`
}

type Channel struct {
	Title string `yaml:"title"`
	Info  string `yaml:"info"`
}

type Contact struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title"`
	Intro      string         `yaml:"intro"`
	Background string         `yaml:"background"`
	Step       *time.Duration `yaml:"step"`
	CTA        string         `yaml:"cta"`
	Channels   []Channel      `yaml:"channels"`
}

type FooterColumn struct {
	Title string   `yaml:"title"`
	Plain bool     `yaml:"plain"`
	Links []string `yaml:"links"`
}

type Footer struct {
	Blurb   string         `yaml:"blurb"`
	Step    *time.Duration `yaml:"step"`
	Columns []FooterColumn `yaml:"columns"`
}

// Default returns the built-in KBC content.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from a YAML file. An empty path loads the built-in
// content.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML content. Unknown fields are rejected.
func Parse(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the content for problems that would break the page.
func (c *Content) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Company.Name) == "" {
		add("company.name is required")
	}
	if len(c.Hero.Slides) == 0 {
		add("hero.slides must not be empty")
	}
	for i, s := range c.Hero.Slides {
		if s.Src == "" {
			add("hero.slides[%d].src is required", i)
		}
	}
	checkStats := func(prefix string, stats []Stat) {
		for i, s := range stats {
			if strings.TrimSpace(s.Label) == "" {
				add("%s[%d].label is required", prefix, i)
			}
		}
	}
	checkStats("hero.stats", c.Hero.Stats)
	checkStats("stats_band.stats", c.StatsBand.Stats)

	checkStep := func(name string, d *time.Duration) {
		if d != nil && *d < 0 {
			add("%s.step must not be negative", name)
		}
	}
	checkStep("stats_band", c.StatsBand.Step)
	checkStep("services", c.Services.Step)
	checkStep("projects", c.Projects.Step)
	checkStep("videos", c.Videos.Step)
	checkStep("about", c.About.Step)
	checkStep("why_us", c.WhyUs.Step)
	checkStep("contact", c.Contact.Step)
	checkStep("footer", c.Footer.Step)

	anchors := map[string]bool{
		c.Services.ID: true,
		c.Projects.ID: true,
		c.About.ID:    true,
		c.Contact.ID:  true,
	}
	for i, n := range c.Nav {
		if n.Anchor == "" || !anchors[n.Anchor] {
			add("nav[%d] anchor %q does not match a section id", i, n.Anchor)
		}
	}
	for i, v := range c.Videos.Items {
		if v.Src == "" {
			add("videos.items[%d].src is required", i)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
}

// Assets returns every local asset path the content references, in order
// of first appearance.
func (c *Content) Assets() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] || !strings.HasPrefix(p, "/") {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(c.Company.Logo)
	for _, s := range c.Hero.Slides {
		add(s.Src)
	}
	add(c.StatsBand.Background)
	for _, card := range c.Services.Items {
		add(card.Image)
	}
	for _, card := range c.Projects.Items {
		add(card.Image)
	}
	for _, v := range c.Videos.Items {
		add(v.Src)
		add(v.Poster)
	}
	add(c.About.Image)
	add(c.WhyUs.Image)
	add(c.Contact.Background)
	return out
}
