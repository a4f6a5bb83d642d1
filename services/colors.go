package services

import (
	"strings"

	"brand-ranking/models"
)

const (
	defaultOthersColor    = "#BFBFBF"
	defaultBarOthersColor = "#D1D5DB"
	defaultBarColor       = "#9CA3AF"
)

// Palette decides which color each chart category is drawn with.
type Palette struct {
	// Core brands always use their fixed color.
	Core map[string]string
	// Preset colors are handed out in order to every other brand.
	Preset []string
	// Others is the neutral color of the Others bucket.
	Others string
}

// DefaultPalette returns the dashboard's stock colors.
func DefaultPalette() Palette {
	return Palette{
		Core: map[string]string{
			"Diablo": "#1D39C4",
			"EZARC":  "#3B9DF8",
			"TOLESA": "#111827",
		},
		Preset: []string{
			"#0050B3", "#096DD9", "#1890FF", "#40A9FF",
			"#69C0FF", "#91D5FF", "#006D75", "#08979C",
			"#13C2C2", "#36CFC9", "#5CDBD3", "#87E8DE",
			"#2F54EB", "#597EF7", "#85A5FF", "#ADC6FF",
		},
		Others: defaultOthersColor,
	}
}

// usable is Preset minus any color reserved by a core brand.
func (p Palette) usable() []string {
	reserved := make(map[string]struct{}, len(p.Core))
	for _, c := range p.Core {
		reserved[strings.ToUpper(c)] = struct{}{}
	}
	colors := make([]string, 0, len(p.Preset))
	for _, c := range p.Preset {
		if _, taken := reserved[strings.ToUpper(c)]; taken {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}

func (p Palette) othersColor() string {
	if p.Others == "" {
		return defaultOthersColor
	}
	return p.Others
}

// colorFor picks the color for one entry. next is the index of the next unused
// palette color; the returned index is what the following entry should use.
func (p Palette) colorFor(e models.ShareEntry, colors []string, next int) (string, int) {
	if e.IsOthers {
		return p.othersColor(), next
	}
	if c, ok := p.Core[e.Name]; ok {
		return c, next
	}
	if len(colors) == 0 {
		return p.othersColor(), next
	}
	return colors[next%len(colors)], next + 1
}

// Assign returns a copy of entries with Color filled in, walking them in order.
func (p Palette) Assign(entries []models.ShareEntry) []models.ShareEntry {
	colors := p.usable()
	out := make([]models.ShareEntry, len(entries))
	next := 0
	for i, e := range entries {
		e.Color, next = p.colorFor(e, colors, next)
		out[i] = e
	}
	return out
}

// BarColor is the color of a stat's row in the ranked bar lists.
func (p Palette) BarColor(s models.BrandStat) string {
	if s.IsOthers() {
		return defaultBarOthersColor
	}
	if c, ok := p.Core[s.Brand]; ok {
		return c
	}
	return defaultBarColor
}
