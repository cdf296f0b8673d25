// Package render prints crosstab tables: a styled terminal layout via
// lipgloss, and a plain TSV form for piping.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pivotkit/pivotkit/pkg/crosstab"
	"github.com/pivotkit/pivotkit/pkg/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	cellStyle   = lipgloss.NewStyle()
)

// Table renders the crosstab as an aligned terminal table: first row and
// first column styled as headers, last row and last column as totals.
func Table(t *crosstab.Table) string {
	rows := t.Rows()
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			s := FormatCell(v)
			cells[r][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	var b strings.Builder
	for r, row := range cells {
		parts := make([]string, len(row))
		for c, s := range row {
			style := cellStyle
			switch {
			case r == 0:
				style = headerStyle
			case r == len(cells)-1 || c == len(row)-1:
				style = totalStyle
			}
			align := lipgloss.Right
			if c == 0 {
				align = lipgloss.Left
			}
			parts[c] = style.Width(widths[c]).Align(align).Render(s)
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}
	return b.String()
}

// TSV renders the crosstab as tab-separated values, absent cells as empty
// fields.
func TSV(t *crosstab.Table) string {
	var b strings.Builder
	for _, row := range t.Rows() {
		parts := util.Map(func(v any) string {
			if v == nil {
				return ""
			}
			return FormatCell(v)
		}, row)
		b.WriteString(strings.Join(parts, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatCell renders one table cell: absent cells as a dash, buckets as
// JSON, floats without trailing zeros.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int, int32, int64, uint, uint64, bool:
		return fmt.Sprintf("%v", t)
	case []any:
		return util.Stringify(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
