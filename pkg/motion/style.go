package motion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Direction names the side an element arrives from when revealed.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "up", "down", "left" or "right". The empty string
// means Up.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Up, fmt.Errorf("motion: unknown direction %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Offset is a 2D translation in CSS pixels.
type Offset struct {
	X, Y float64
}

// IsZero reports whether the offset is (0,0).
func (o Offset) IsZero() bool { return o.X == 0 && o.Y == 0 }

// Transform renders the offset as a CSS transform value.
func (o Offset) Transform() string {
	return "translate(" + px(o.X) + ", " + px(o.Y) + ")"
}

func px(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Transition describes a one-shot CSS transition.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   string
}

// CSS renders the transition shorthand, e.g. "all 600ms ease-out 200ms".
func (t Transition) CSS() string {
	easing := t.Easing
	if easing == "" {
		easing = "ease-out"
	}
	return fmt.Sprintf("all %dms %s %dms", t.Duration.Milliseconds(), easing, t.Delay.Milliseconds())
}

// Declarations is an ordered list of CSS property/value pairs.
type Declarations []Declaration

// Declaration is a single CSS property.
type Declaration struct {
	Property string
	Value    string
}

// Add appends a declaration and returns the list.
func (d Declarations) Add(property, value string) Declarations {
	return append(d, Declaration{Property: property, Value: value})
}

// String renders the declarations as an inline style attribute value.
func (d Declarations) String() string {
	var b strings.Builder
	for i, decl := range d {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(decl.Property)
		b.WriteString(": ")
		b.WriteString(decl.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// FormatOpacity renders an opacity value without trailing zeros.
func FormatOpacity(v float64) string {
	return strconv.FormatFloat(Clamp01(v), 'f', -1, 64)
}
