package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultContent(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if got := len(c.Hero.Slides); got != 3 {
		t.Errorf("hero slides = %d, want 3", got)
	}
	if c.Hero.Slides[0].Src != "/images/hero-motto.jpg" {
		t.Errorf("first slide = %q", c.Hero.Slides[0].Src)
	}
	if c.StatsBand.Step == nil || *c.StatsBand.Step != 150*time.Millisecond {
		t.Errorf("stats band step = %v, want 150ms", c.StatsBand.Step)
	}
	if c.Videos.Step == nil || *c.Videos.Step != 300*time.Millisecond {
		t.Errorf("videos step = %v, want 300ms", c.Videos.Step)
	}
	if got := c.Hero.Stats[0]; got.End != 500 || got.Suffix != "+" {
		t.Errorf("first hero stat = %+v", got)
	}
	if !strings.Contains(c.Contact.Channels[2].Info, "\n") {
		t.Error("head office address should keep its line break")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("company:\n  name: X\n  colour: red\n"))
	if !errors.Is(err, ErrInvalidContent) {
		t.Errorf("Parse() error = %v, want ErrInvalidContent", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Content {
		c, err := Default()
		if err != nil {
			t.Fatal(err)
		}
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Content)
		want   string
	}{
		{"no slides", func(c *Content) { c.Hero.Slides = nil }, "hero.slides must not be empty"},
		{"slide without src", func(c *Content) { c.Hero.Slides[1].Src = "" }, "hero.slides[1].src"},
		{"stat without label", func(c *Content) { c.StatsBand.Stats[2].Label = " " }, "stats_band.stats[2].label"},
		{"negative step", func(c *Content) { d := -time.Second; c.Footer.Step = &d }, "footer.step"},
		{"dangling anchor", func(c *Content) { c.Nav[0].Anchor = "pricing" }, `anchor "pricing"`},
		{"no company", func(c *Content) { c.Company.Name = "" }, "company.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalidContent) {
				t.Fatalf("Validate() error = %v, want ErrInvalidContent", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		c, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if c.Company.Name == "" {
			t.Error("expected default company")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "content.yaml")
		data := append([]byte{}, defaultContent...)
		data = []byte(strings.Replace(string(data), "name: KBC Construction & Properties", "name: KBC Test", 1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Company.Name != "KBC Test" {
			t.Errorf("company = %q", c.Company.Name)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestAssets(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	assets := c.Assets()
	if assets[0] != "/images/logo.png" {
		t.Errorf("first asset = %q", assets[0])
	}
	seen := map[string]bool{}
	for _, a := range assets {
		if seen[a] {
			t.Errorf("duplicate asset %q", a)
		}
		seen[a] = true
	}
	for _, want := range []string{"/images/hero-land-sale.png", "/videos/kbc-showcase.mp4", "/images/office-kumasi.png"} {
		if !seen[want] {
			t.Errorf("assets missing %q", want)
		}
	}
}

func TestCarousel(t *testing.T) {
	c := NewCarousel(3, 0)
	if c.Interval != DefaultSlideInterval {
		t.Errorf("interval = %v, want %v", c.Interval, DefaultSlideInterval)
	}

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{4999 * time.Millisecond, 0},
		{5 * time.Second, 1},
		{10 * time.Second, 2},
		{15 * time.Second, 0},
		{-time.Second, 0},
	}
	for _, tt := range tests {
		if got := c.IndexAt(tt.elapsed); got != tt.want {
			t.Errorf("IndexAt(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}

	if c.Next(2) != 0 || c.Next(0) != 1 {
		t.Error("Next should wrap around")
	}
	single := NewCarousel(1, time.Second)
	if single.Cycles() || single.IndexAt(time.Hour) != 0 || single.Next(0) != 0 {
		t.Error("single slide carousel should not rotate")
	}
}

func TestStepDistinguishesZeroFromUnset(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want *time.Duration
	}{
		{"unset", "blurb: x\n", nil},
		{"zero", "step: 0s\n", new(time.Duration)},
		{"set", "step: 250ms\n", func() *time.Duration { d := 250 * time.Millisecond; return &d }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Footer
			if err := yaml.Unmarshal([]byte(tt.yaml), &f); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			switch {
			case tt.want == nil && f.Step != nil:
				t.Errorf("Step = %v, want unset", *f.Step)
			case tt.want != nil && (f.Step == nil || *f.Step != *tt.want):
				t.Errorf("Step = %v, want %v", f.Step, *tt.want)
			}
		})
	}
}
