package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the table layout before the first resize.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes columns for the given terminal width. The question
// column absorbs the remaining space.
func columnsForWidth(width int) []table.Column {
	const fixed = 4 + 10 + 10 + 20 + 8
	question := width - fixed - 12
	if question < 20 {
		question = 20
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: question},
		{Title: "Status", Width: 10},
		{Title: "Method", Width: 10},
		{Title: "Answer", Width: 20},
		{Title: "Time", Width: 8},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuestionText(row.Text),
			formatStatus(row, noColor),
			row.Method,
			row.Option,
			formatRowDuration(row, now),
		})
	}
	return rows
}
