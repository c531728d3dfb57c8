package report

import "github.com/fatih/color"

// Palette holds the colors of one text report. Each report owns its
// colors so enabling them never leaks into other output.
type Palette struct {
	cyan   *color.Color
	yellow *color.Color
	green  *color.Color
	red    *color.Color
}

// NewPalette returns a palette with colors switched on or off.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		cyan:   color.New(color.FgCyan),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.cyan, p.yellow, p.green, p.red} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Cyan wraps s in the cyan escape sequence when colors are enabled.
func (p *Palette) Cyan(s string) string { return p.cyan.Sprint(s) }

// Yellow wraps s in the yellow escape sequence when colors are enabled.
func (p *Palette) Yellow(s string) string { return p.yellow.Sprint(s) }

// Green wraps s in the green escape sequence when colors are enabled.
func (p *Palette) Green(s string) string { return p.green.Sprint(s) }

// Red wraps s in the red escape sequence when colors are enabled.
func (p *Palette) Red(s string) string { return p.red.Sprint(s) }
