// Package theme maps highlight categories to display styles and renders
// them for tcell screens and ANSI terminals.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/SQU1DMAN6/sitehl/internal/config"
	"github.com/SQU1DMAN6/sitehl/internal/highlight"
)

// ErrUnknownCategory is returned for theme keys that name no category.
var ErrUnknownCategory = errors.New("unknown category")

// Color is an optional colour. The zero value is the terminal default.
type Color struct {
	colorful.Color
	Set bool
}

// RGB wraps c as a set colour.
func RGB(c colorful.Color) Color {
	return Color{Color: c, Set: true}
}

// ParseColor parses #rgb or #rrggbb. An empty string is the terminal default.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(c), nil
}

func mustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as #rrggbb, or "" for the terminal default.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return c.Color.Clamped().Hex()
}

func (c Color) tcell() tcell.Color {
	if !c.Set {
		return tcell.ColorDefault
	}
	r, g, b := c.Color.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Style is the look of one category.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	Underline  bool
}

// Theme holds a style per category.
type Theme struct {
	styles map[highlight.Category]Style
}

// Default returns the built-in palette.
func Default() *Theme {
	return &Theme{styles: map[highlight.Category]Style{
		highlight.PlainText:     {},
		highlight.Keyword:       {Foreground: mustColor("#F92672")},
		highlight.String:        {Foreground: mustColor("#a39b4e")},
		highlight.Comment:       {Foreground: mustColor("#75715E")},
		highlight.Type:          {Foreground: mustColor("#54aebf")},
		highlight.Other:         {Foreground: mustColor("#db8744")},
		highlight.NumberLiteral: {Foreground: mustColor("#AE81FF")},
		highlight.Builtin:       {Foreground: mustColor("#018a0f")},
	}}
}

// FromConfig applies the configured overrides on top of the default palette.
func FromConfig(cfg config.ThemeConfig) (*Theme, error) {
	t := Default()
	for name, sc := range cfg.Colors {
		cat, ok := highlight.ParseCategory(strings.ToLower(name))
		if !ok {
			return nil, fmt.Errorf("theme.colors.%s: %w", name, ErrUnknownCategory)
		}
		st := t.styles[cat]
		if sc.Foreground != "" {
			c, err := ParseColor(sc.Foreground)
			if err != nil {
				return nil, fmt.Errorf("theme.colors.%s.foreground: %w", name, err)
			}
			st.Foreground = c
		}
		if sc.Background != "" {
			c, err := ParseColor(sc.Background)
			if err != nil {
				return nil, fmt.Errorf("theme.colors.%s.background: %w", name, err)
			}
			st.Background = c
		}
		st.Bold = st.Bold || sc.Bold
		st.Italic = st.Italic || sc.Italic
		st.Underline = st.Underline || sc.Underline
		t.styles[cat] = st
	}
	return t, nil
}

// Style returns the style of cat.
func (t *Theme) Style(cat highlight.Category) Style {
	return t.styles[cat]
}

// Resolve layers the decorations of a resolved character format over the
// category style: span underlines and explicit colour pairs.
func (t *Theme) Resolve(f highlight.Format) Style {
	st := t.styles[f.Category]
	if f.Underline {
		st.Underline = true
	}
	if f.Colors != nil {
		st.Foreground = RGB(f.Colors.Foreground)
		st.Background = RGB(f.Colors.Background)
	}
	return st
}

// Tcell converts a format to a tcell style based on base.
func (t *Theme) Tcell(base tcell.Style, f highlight.Format) tcell.Style {
	st := t.Resolve(f)
	out := base.Bold(st.Bold).Italic(st.Italic).Underline(st.Underline)
	if st.Foreground.Set {
		out = out.Foreground(st.Foreground.tcell())
	}
	if st.Background.Set {
		out = out.Background(st.Background.tcell())
	}
	return out
}

// Lipgloss converts a format to a lipgloss style bound to r.
func (t *Theme) Lipgloss(r *lipgloss.Renderer, f highlight.Format) lipgloss.Style {
	st := t.Resolve(f)
	out := r.NewStyle().Bold(st.Bold).Italic(st.Italic).Underline(st.Underline)
	if st.Foreground.Set {
		out = out.Foreground(lipgloss.Color(st.Foreground.Hex()))
	}
	if st.Background.Set {
		out = out.Background(lipgloss.Color(st.Background.Hex()))
	}
	return out
}

// ParseProfile maps a --color flag value to a terminal colour profile.
// "auto" returns ok=false, leaving detection to termenv.
func ParseProfile(name string) (p termenv.Profile, ok bool, err error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return termenv.Ascii, false, nil
	case "never", "none", "ascii":
		return termenv.Ascii, true, nil
	case "ansi", "16":
		return termenv.ANSI, true, nil
	case "256", "ansi256":
		return termenv.ANSI256, true, nil
	case "always", "truecolor", "24bit":
		return termenv.TrueColor, true, nil
	}
	return termenv.Ascii, false, fmt.Errorf("unknown color mode %q", name)
}
