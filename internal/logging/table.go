package logging

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// MissingValue stands in for a value that cannot be shown
const MissingValue = "-"

// secondsDecimals is the precision for times in tables: millisecond
// resolution matches what the cutter can hit.
const secondsDecimals = 3

// IntervalRow is one span in an IntervalTable
type IntervalRow struct {
	Label    string // e.g. "Keep 3"
	Interval processor.TimeInterval
	Note     string // optional, e.g. "empty, skipped"
}

// IntervalTable lists time spans with their lengths. The report writes it
// in plain ASCII; the console summary uses a rounded style.
type IntervalTable struct {
	Rows  []IntervalRow
	Style table.Style
}

// NewIntervalTable returns an empty table in go-pretty's ASCII style
func NewIntervalTable() *IntervalTable {
	return &IntervalTable{Style: table.StyleDefault}
}

// Add appends one span
func (t *IntervalTable) Add(label string, interval processor.TimeInterval, note string) {
	t.Rows = append(t.Rows, IntervalRow{Label: label, Interval: interval, Note: note})
}

// Total returns the summed length of every row
func (t *IntervalTable) Total() float64 {
	var total float64
	for _, r := range t.Rows {
		total += r.Interval.Duration()
	}
	return total
}

// String renders the table, or "" when it has no rows. The Note column only
// appears when a row has one.
func (t *IntervalTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	hasNote := false
	for _, r := range t.Rows {
		if r.Note != "" {
			hasNote = true
			break
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(t.Style)
	tw.Style().Format.Header = text.FormatDefault

	header := table.Row{"", "Start", "Stop", "Length"}
	if hasNote {
		header = append(header, "Note")
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		row := table.Row{
			r.Label,
			formatSeconds(r.Interval.Start),
			formatSeconds(r.Interval.Stop),
			formatSeconds(r.Interval.Duration()),
		}
		if hasNote {
			row = append(row, r.Note)
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render() + "\n"
}

func formatSeconds(seconds float64) string {
	return formatMetricWithUnit(seconds, secondsDecimals, "s")
}

// formatMetric renders value to the given decimals. NaN and Inf become
// MissingValue; magnitudes below 1e-4 switch to scientific notation so they
// do not print as zero.
func formatMetric(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	if value != 0 && math.Abs(value) < 1e-4 {
		return fmt.Sprintf("%.2e", value)
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

// formatMetricSigned is formatMetric with an explicit sign, for changes
func formatMetricSigned(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	return fmt.Sprintf("%+.*f", decimals, value)
}

// formatMetricWithUnit appends " unit" unless the value is missing
func formatMetricWithUnit(value float64, decimals int, unit string) string {
	formatted := formatMetric(value, decimals)
	if formatted == MissingValue || unit == "" {
		return formatted
	}
	return strings.Join([]string{formatted, unit}, " ")
}
