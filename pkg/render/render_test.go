package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kbc-construction/site/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text escaped", vdom.Text("a < b & c"), "a &lt; b &amp; c"},
		{"raw", vdom.Raw("<b>x</b>"), "<b>x</b>"},
		{"empty div", vdom.Div(), "<div></div>"},
		{"sorted attrs", vdom.Div(vdom.ID("x"), vdom.Class("a"), vdom.Data("region", "r1")),
			`<div class="a" data-region="r1" id="x"></div>`},
		{"void", vdom.Img(vdom.Src("/a.png"), vdom.Alt("A")), `<img alt="A" src="/a.png">`},
		{"boolean true", vdom.Video(vdom.Controls(), vdom.MutedAttr()), "<video controls muted></video>"},
		{"boolean false", vdom.Video(vdom.AttrIf(false, vdom.Loop())), "<video></video>"},
		{"int attr", vdom.Img(vdom.Width(640)), `<img width="640">`},
		{"fragment", vdom.Fragment(vdom.P("a"), vdom.P("b")), "<p>a</p><p>b</p>"},
		{"script raw text", vdom.Script("if (a < b) {}"), "<script>if (a < b) {}</script>"},
		{"attr escaping", vdom.Div(vdom.StyleAttr(`font-family: "x"`)), `<div style="font-family: &quot;x&quot;"></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSkipsInternalProps(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := vdom.Div()
	node.SetAttr("_region", "r1")
	got, err := r.RenderToString(node)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<div></div>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Error("expected error for element without tag")
	}
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(99)}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderToWriterPropagatesErrors(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if err := r.RenderToWriter(failWriter{}, vdom.Div(vdom.P("x"))); err == nil {
		t.Error("expected write error")
	}
}

func TestPrettyRendering(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.P("hi")))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <p>\n  hi  </p>\n</div>\n"
	if !strings.Contains(got, "<div>\n") || !strings.HasSuffix(got, "</div>\n") {
		t.Errorf("pretty output = %q, want something like %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:          "KBC & Co",
		Body:           vdom.Main(vdom.H1("Hello")),
		Meta:           []MetaTag{{Name: "description", Content: "Homes"}, {Property: "og:title", Content: "KBC"}},
		Links:          []LinkTag{{Rel: "icon", Href: "/favicon.ico", Type: "image/x-icon"}},
		Styles:         []string{"body{margin:0}"},
		NoscriptStyles: []string{"[data-region]{opacity:1 !important}"},
		Scripts:        []ScriptTag{{Inline: "boot()"}, {Src: "/app.js", Defer: true}},
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"en\">",
		"<title>KBC &amp; Co</title>",
		`<meta name="description" content="Homes">`,
		`<meta property="og:title" content="KBC">`,
		`<link rel="icon" href="/favicon.ico" type="image/x-icon">`,
		"<style>body{margin:0}</style>",
		"<noscript><style>[data-region]{opacity:1 !important}</style></noscript>",
		"<main><h1>Hello</h1></main>",
		"<script>boot()</script>",
		`<script src="/app.js" defer></script>`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}

	if strings.Index(html, "<main>") > strings.Index(html, "<script>boot()") {
		t.Error("scripts should follow the body content")
	}
}

func TestRenderPageLang(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, PageData{Lang: "fr"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<html lang="fr">`) {
		t.Errorf("lang not applied: %s", buf.String())
	}
}

func TestEscapeAttrWhitespace(t *testing.T) {
	if got := escapeAttr("a\nb\tc"); got != "a&#10;b&#9;c" {
		t.Errorf("escapeAttr() = %q", got)
	}
	if got := escapeHTML("a\nb"); got != "a\nb" {
		t.Errorf("escapeHTML() = %q", got)
	}
	if got := escapeHTML("plain"); got != "plain" {
		t.Errorf("escapeHTML() = %q", got)
	}
}
