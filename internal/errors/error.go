package errors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryContent Category = "content"
	CategoryServer  Category = "server"
	CategoryRender  Category = "render"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// Location represents a position in a config or content file.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// SiteError is a coded error with a category, an explanation and a fix
// suggestion, printed by the CLI.
type SiteError struct {
	// Code is a unique error identifier (e.g., "KBC010").
	Code string

	// Category is the error type (config, content, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to, if any.
	Location *Location

	// Context contains the surrounding file lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SiteError) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at a file line and captures the lines
// around it.
func (e *SiteError) WithLocation(file string, line int) *SiteError {
	e.Location = &Location{File: file, Line: line}
	if line > 0 {
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// yamlLine matches the position yaml.v3 puts in its messages.
var yamlLine = regexp.MustCompile(`line (\d+)`)

// WithLocationFromYAML extracts the first line number from a yaml.v3 error
// and points the error at it in file.
func (e *SiteError) WithLocationFromYAML(file string, err error) *SiteError {
	if err == nil {
		return e
	}
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		e.Location = &Location{File: file}
		return e
	}
	line, _ := strconv.Atoi(m[1])
	return e.WithLocation(file, line)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SiteError) WithSuggestion(s string) *SiteError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SiteError) WithDetail(d string) *SiteError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SiteError) Wrap(err error) *SiteError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a SiteError from a registered error code.
func New(code string) *SiteError {
	template, ok := registry[code]
	if !ok {
		return &SiteError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SiteError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new SiteError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SiteError {
	return &SiteError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SiteError. An error that already
// contains a SiteError is returned as that SiteError.
func FromError(err error, code string) *SiteError {
	if err == nil {
		return nil
	}
	var se *SiteError
	if errors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}
