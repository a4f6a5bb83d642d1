package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"brand-ranking/models"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Board describes how the ranking dashboard slices and colors brands.
type Board struct {
	PinnedBrands []string          `yaml:"pinned_brands"`
	CoreColors   map[string]string `yaml:"core_colors"`
	Palette      []string          `yaml:"palette"`
	OthersColor  string            `yaml:"others_color"`
	RankBy       string            `yaml:"rank_by"`
	TopN         TopN              `yaml:"top_n"`
}

// TopN holds the cutoff of each ranked table. 0 shows every brand.
type TopN struct {
	Position int `yaml:"position"`
	Volume   int `yaml:"volume"`
	Revenue  int `yaml:"revenue"`
}

// DefaultBoard returns the stock dashboard layout.
func DefaultBoard() *Board {
	return &Board{
		PinnedBrands: []string{"EZARC", "TOLESA"},
		CoreColors: map[string]string{
			"Diablo": "#1D39C4",
			"EZARC":  "#3B9DF8",
			"TOLESA": "#111827",
		},
		Palette: []string{
			"#0050B3", "#096DD9", "#1890FF", "#40A9FF",
			"#69C0FF", "#91D5FF", "#006D75", "#08979C",
			"#13C2C2", "#36CFC9", "#5CDBD3", "#87E8DE",
			"#2F54EB", "#597EF7", "#85A5FF", "#ADC6FF",
		},
		OthersColor: "#BFBFBF",
		RankBy:      string(models.SortByCount),
		TopN:        TopN{Position: 10, Volume: 10, Revenue: 10},
	}
}

// LoadBoard reads a board YAML file. A missing file yields DefaultBoard; keys
// absent from the file keep their default values and core_colors entries are
// merged into the default map.
func LoadBoard(path string) (*Board, error) {
	board := DefaultBoard()
	if path == "" {
		return board, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return board, nil
		}
		return nil, fmt.Errorf("config: read board %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, board); err != nil {
		return nil, fmt.Errorf("config: parse board %q: %w", path, err)
	}
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("config: board %q: %w", path, err)
	}
	return board, nil
}

// Validate checks the ranking key, cutoffs and color literals.
func (b *Board) Validate() error {
	var errs []error
	if _, err := models.ParseSortKey(b.RankBy); err != nil {
		errs = append(errs, fmt.Errorf("rank_by: %w", err))
	}
	for name, n := range map[string]int{
		"position": b.TopN.Position,
		"volume":   b.TopN.Volume,
		"revenue":  b.TopN.Revenue,
	} {
		if n < 0 {
			errs = append(errs, fmt.Errorf("top_n.%s must be >= 0, got %d", name, n))
		}
	}
	for brand, c := range b.CoreColors {
		if !hexColorRegexp.MatchString(c) {
			errs = append(errs, fmt.Errorf("core_colors.%s: %q is not a #RRGGBB color", brand, c))
		}
	}
	for i, c := range b.Palette {
		if !hexColorRegexp.MatchString(c) {
			errs = append(errs, fmt.Errorf("palette[%d]: %q is not a #RRGGBB color", i, c))
		}
	}
	if b.OthersColor != "" && !hexColorRegexp.MatchString(b.OthersColor) {
		errs = append(errs, fmt.Errorf("others_color: %q is not a #RRGGBB color", b.OthersColor))
	}
	return errors.Join(errs...)
}

// PositionKey is the metric the positions table is ranked by. An empty or
// invalid rank_by ranks by listing count.
func (b *Board) PositionKey() models.SortKey {
	k, err := models.ParseSortKey(b.RankBy)
	if err != nil {
		return models.SortByCount
	}
	return k
}

// SetRankBy validates and applies a ranking key for the positions table.
func (b *Board) SetRankBy(s string) error {
	k, err := models.ParseSortKey(s)
	if err != nil {
		return err
	}
	b.RankBy = string(k)
	return nil
}

// SetTopN applies one cutoff to every table.
func (b *Board) SetTopN(n int) {
	b.TopN = TopN{Position: n, Volume: n, Revenue: n}
}

// Write marshals the board to YAML and writes it to w.
func Write(w io.Writer, b *Board) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(b)
}
