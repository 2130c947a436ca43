package table

import (
	"fmt"

	"github.com/dshills/tasktable/internal/renderer/core"
)

// Theme holds the table colors.
type Theme struct {
	Text     core.Color
	Header   core.Color
	Odd      core.Color // background of 1st, 3rd, ... rows
	Even     core.Color
	Selected core.Color
}

// ThemeSpec is a Theme in hex notation, as it appears in configuration.
type ThemeSpec struct {
	Text     string
	Header   string
	Odd      string
	Even     string
	Selected string
}

// DefaultThemeSpec returns the light blue striped theme.
func DefaultThemeSpec() ThemeSpec {
	return ThemeSpec{
		Text:     "#1a1a1a",
		Header:   "#eaf5fd",
		Odd:      "#d2e9fb",
		Even:     "#eaf5fd",
		Selected: "#9cc9f0",
	}
}

// DefaultTheme returns the parsed default theme.
func DefaultTheme() Theme {
	th, err := ParseTheme(DefaultThemeSpec())
	if err != nil {
		panic(err) // default spec is static
	}
	return th
}

// ParseTheme converts hex colors into a Theme. An empty Selected color is
// derived by darkening the odd row color.
func ParseTheme(spec ThemeSpec) (Theme, error) {
	var th Theme
	fields := []struct {
		name string
		hex  string
		dst  *core.Color
	}{
		{"text", spec.Text, &th.Text},
		{"header", spec.Header, &th.Header},
		{"odd", spec.Odd, &th.Odd},
		{"even", spec.Even, &th.Even},
	}
	for _, f := range fields {
		c, err := core.ColorFromHex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", f.name, err)
		}
		*f.dst = c
	}

	if spec.Selected == "" {
		th.Selected = th.Odd.Blend(core.ColorBlack, 0.2)
		return th, nil
	}
	c, err := core.ColorFromHex(spec.Selected)
	if err != nil {
		return Theme{}, fmt.Errorf("theme selected: %w", err)
	}
	th.Selected = c
	return th, nil
}

// rowStyle returns the style for display row i (0-based).
func (th Theme) rowStyle(i int, selected bool) core.Style {
	bg := th.Even
	if i%2 == 0 {
		bg = th.Odd
	}
	if selected {
		bg = th.Selected
	}
	return core.DefaultStyle().WithForeground(th.Text).WithBackground(bg)
}

func (th Theme) headerStyle() core.Style {
	return core.DefaultStyle().WithForeground(th.Text).WithBackground(th.Header).Bold()
}
