package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "KBC001",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "content error",
			code:    "KBC010",
			wantMsg: "Invalid content",
			wantCat: CategoryContent,
		},
		{
			name:    "publish error",
			code:    "KBC030",
			wantMsg: "Missing asset",
			wantCat: CategoryPublish,
		},
		{
			name:    "unknown error code",
			code:    "KBC999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "bucket")
	if err.Message != `flag "bucket" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SiteError
		want string
	}{
		{"coded", New("KBC001"), "KBC001: Invalid configuration"},
		{"plain", &SiteError{Message: "test error"}, "test error"},
		{"wrapped", New("KBC031").Wrap(fmt.Errorf("timeout")), "KBC031: Upload failed: timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("KBC010").Wrap(fmt.Errorf("validate: %w", sentinel))
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see through SiteError")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleYAML = `company:
  name: KBC
hero:
  slides:
    - src /images/a.jpg
      alt: A
footer:
  copyright: x
`

func TestWithLocation(t *testing.T) {
	path := writeFile(t, sampleYAML)
	err := New("KBC011").WithLocation(path, 5)

	if err.Location == nil || err.Location.Line != 5 {
		t.Fatalf("Location = %+v", err.Location)
	}
	if len(err.Context) != 5 {
		t.Fatalf("Context = %d lines, want 5", len(err.Context))
	}
	if !strings.Contains(err.Context[2], "src /images/a.jpg") {
		t.Errorf("middle context line = %q", err.Context[2])
	}
}

func TestWithLocationFromYAML(t *testing.T) {
	path := writeFile(t, sampleYAML)

	t.Run("with line", func(t *testing.T) {
		err := New("KBC011").WithLocationFromYAML(path, fmt.Errorf("yaml: line 6: mapping values are not allowed in this context"))
		if err.Location == nil || err.Location.Line != 6 {
			t.Fatalf("Location = %+v", err.Location)
		}
		if err.Location.String() != path+":6" {
			t.Errorf("String() = %q", err.Location.String())
		}
	})

	t.Run("without line", func(t *testing.T) {
		err := New("KBC011").WithLocationFromYAML(path, fmt.Errorf("EOF"))
		if err.Location == nil || err.Location.Line != 0 {
			t.Fatalf("Location = %+v", err.Location)
		}
		if err.Location.String() != path {
			t.Errorf("String() = %q", err.Location.String())
		}
	})

	t.Run("nil error", func(t *testing.T) {
		if err := New("KBC011").WithLocationFromYAML(path, nil); err.Location != nil {
			t.Error("nil error should not set a location")
		}
	})
}

func TestFromError(t *testing.T) {
	if FromError(nil, "KBC001") != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := stderrors.New("boom")
	se := FromError(plain, "KBC020")
	if se.Code != "KBC020" || se.Wrapped != plain {
		t.Errorf("FromError = %+v", se)
	}

	existing := New("KBC030")
	wrapped := fmt.Errorf("publish: %w", existing)
	if got := FromError(wrapped, "KBC020"); got != existing {
		t.Error("FromError should return the SiteError already in the chain")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	path := writeFile(t, sampleYAML)
	err := New("KBC011").WithLocation(path, 5).Wrap(fmt.Errorf("yaml: line 5: bad"))
	out := err.Format()

	for _, want := range []string{
		"ERROR KBC011: Content file not readable",
		path + ":5",
		"→    5 │     - src /images/a.jpg",
		"Cause: yaml: line 5: bad",
		"Hint: Leave content.path empty",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("KBC001")
	err.Location = &Location{File: "kbc.json"}
	if got := err.FormatCompact(); got != "kbc.json: KBC001: Invalid configuration" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("cli: %w", New("KBC033")))
	if !strings.Contains(buf.String(), "ERROR KBC033: Bucket required") {
		t.Errorf("PrintError() = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}

func TestRegistryCategories(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Category == "" || tmpl.Message == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
	}

	Register("KBC900", ErrorTemplate{Category: CategoryCLI, Message: "test"})
	defer delete(registry, "KBC900")
	if New("KBC900").Message != "test" {
		t.Error("registered template not used")
	}
}
