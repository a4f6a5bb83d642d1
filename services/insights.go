package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"brand-ranking/config"
	"brand-ranking/models"
	"brand-ranking/utils"
)

var (
	colorTitle   = color.New(color.FgMagenta, color.Bold)
	colorSection = color.New(color.FgYellow, color.Bold)
	colorBold    = color.New(color.Bold)
	colorUp      = color.New(color.FgGreen)
	colorDown    = color.New(color.FgRed)
	colorMuted   = color.New(color.FgHiBlack)
)

// InsightService builds the ranking dashboard for one snapshot pair.
type InsightService struct {
	logger  *utils.Logger
	board   *config.Board
	palette Palette
	pinned  models.BrandSet
}

func NewInsightService(logger *utils.Logger, board *config.Board) *InsightService {
	return &InsightService{
		logger:  logger,
		board:   board,
		palette: PaletteFromBoard(board),
		pinned:  models.NewBrandSet(board.PinnedBrands...),
	}
}

// PaletteFromBoard builds chart colors from a board; an empty board section
// falls back to the stock colors.
func PaletteFromBoard(b *config.Board) Palette {
	p := DefaultPalette()
	if len(b.CoreColors) > 0 {
		p.Core = b.CoreColors
	}
	if len(b.Palette) > 0 {
		p.Preset = b.Palette
	}
	if b.OthersColor != "" {
		p.Others = b.OthersColor
	}
	return p
}

func (s *InsightService) Generate(pair *models.SnapshotPair) *models.Dashboard {
	stats := Aggregate(pair.Current, pair.Previous)
	totals := models.TotalsOf(stats)

	d := &models.Dashboard{
		CurrentPeriod:  pair.CurrentPeriod,
		PreviousPeriod: pair.PreviousPeriod,
		Totals:         totals,
		Stats:          SelectTop(stats, models.SortByCount, 0),
		RankedBy:       s.board.PositionKey(),
		ByVolume:       ConsolidateTopN(stats, models.SortBySalesVolume, s.board.TopN.Volume, totals, s.pinned),
		ByRevenue:      ConsolidateTopN(stats, models.SortBySales, s.board.TopN.Revenue, totals, s.pinned),
		Summary:        Summarize(stats, s.board.PinnedBrands, totals),
	}
	d.Positions = SelectTop(stats, d.RankedBy, s.board.TopN.Position)
	d.RevenueShare = BuildShareSeries(d.ByRevenue, models.ValueBySales, s.pinned, s.palette)
	d.VolumeShare = BuildShareSeries(d.ByVolume, models.ValueBySalesVolume, s.pinned, s.palette)

	if !pair.HasPrevious() {
		s.logger.Info("[insights] No snapshot before %s — deltas unavailable", pair.CurrentPeriod)
	}
	s.logger.Debug("[insights] %d brands over %d listings (revenue slices: %d, volume slices: %d)",
		len(stats), totals.Count, len(d.RevenueShare), len(d.VolumeShare))
	return d
}

// Summarize adds up the pinned brands' listings, volume and sales. Brands
// absent from stats contribute nothing.
func Summarize(stats []models.BrandStat, brands []string, totals models.Totals) models.Summary {
	set := models.NewBrandSet(brands...)
	sum := models.Summary{Brands: brands, TotalListing: totals.Count}
	for _, st := range stats {
		if !set.Has(st.Brand) {
			continue
		}
		sum.Slots += st.Count
		sum.SalesVolume += st.SalesVolume
		sum.Sales += st.Sales
	}
	sum.SlotShare = share(float64(sum.Slots), float64(totals.Count))
	return sum
}

func (s *InsightService) Print(w io.Writer, d *models.Dashboard) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	colorTitle.Fprintf(w, "\n%s\n", sep)
	colorTitle.Fprintf(w, "  BRAND RANKING — %s\n", d.CurrentPeriod)
	colorTitle.Fprintf(w, "%s\n\n", sep)

	colorSection.Fprintln(w, "  Overview")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings        : %s\n", colorBold.Sprint(d.Totals.Count))
	fmt.Fprintf(w, "  Brands          : %s\n", colorBold.Sprint(len(d.Stats)))
	if d.PreviousPeriod != "" {
		fmt.Fprintf(w, "  Compared with   : %s\n", d.PreviousPeriod)
	}
	fmt.Fprintln(w)

	sum := d.Summary
	colorSection.Fprintf(w, "  %s\n", strings.Join(sum.Brands, " + "))
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Brand slots     : %s\n", colorBold.Sprint(sum.Slots))
	fmt.Fprintf(w, "  Share           : %s of %d\n", colorBold.Sprintf("%.0f%%", sum.SlotShare), sum.TotalListing)
	fmt.Fprintf(w, "  Sales volume    : %s\n", colorBold.Sprintf("%.0f", sum.SalesVolume))
	fmt.Fprintf(w, "  Sales           : %s\n", colorBold.Sprintf("$%.2f", sum.Sales))
	fmt.Fprintln(w)

	colorSection.Fprintf(w, "  Listing Positions (by %s)\n", d.RankedBy)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(d.Positions) == 0 {
		fmt.Fprintln(w, "  No listings")
	}
	for i, st := range d.Positions {
		pct := d.RankedBy.Share(st)
		bar := s.swatch(st).Sprint(strings.Repeat("█", barWidth(pct)))
		fmt.Fprintf(w, "  %2d. %-22s %-25s %5.1f%% %s\n",
			i+1, truncate(st.Brand, 22), bar, pct, formatDelta(st.DeltaCount))
	}
	fmt.Fprintln(w)

	s.printShare(w, "Revenue Share", d.RevenueShare, func(v float64) string { return fmt.Sprintf("$%.2f", v) })
	s.printShare(w, "Sales Volume Share", d.VolumeShare, func(v float64) string { return fmt.Sprintf("%.0f", v) })

	colorTitle.Fprintf(w, "%s\n\n", sep)
}

func (s *InsightService) printShare(w io.Writer, title string, entries []models.ShareEntry, format func(float64) string) {
	thin := strings.Repeat("─", 60)
	colorSection.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  No data")
		fmt.Fprintln(w)
		return
	}

	var total float64
	for _, e := range entries {
		total += e.Value
	}
	for _, e := range entries {
		dot := hexColor(e.Color).Sprint("●")
		fmt.Fprintf(w, "  %s %-24s %14s %6.1f%%\n", dot, truncate(e.Name, 24), format(e.Value), share(e.Value, total))
	}
	fmt.Fprintln(w)
}

func (s *InsightService) swatch(st models.BrandStat) *color.Color {
	return hexColor(s.palette.BarColor(st))
}

// hexColor turns "#RRGGBB" into a printer; anything else prints muted.
func hexColor(hex string) *color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return colorMuted
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return colorMuted
	}
	return color.RGB(int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF))
}

// barWidth scales a percentage to at most 25 cells, with a visible minimum.
func barWidth(pct float64) int {
	n := int(pct / 4)
	if n < 1 && pct > 0 {
		n = 1
	}
	if n > 25 {
		n = 25
	}
	return n
}

func formatDelta(delta *int) string {
	switch {
	case delta == nil:
		return colorMuted.Sprint("—")
	case *delta > 0:
		return colorUp.Sprintf("+%d", *delta)
	case *delta < 0:
		return colorDown.Sprintf("%d", *delta)
	default:
		return colorMuted.Sprint("0")
	}
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
