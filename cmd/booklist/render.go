package main

import (
	"fmt"
	"strings"

	"booklist/internal/book"
	"booklist/internal/listing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxCellWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func stateFromFlags(author, sortKey, dir string, page, size int) (listing.ViewState, error) {
	return listing.Params{
		Author:   author,
		Sort:     sortKey,
		Dir:      dir,
		Page:     page,
		PageSize: size,
	}.State()
}

func renderPage(p listing.Page) string {
	headers := make([]string, 0, len(book.Columns))
	for _, c := range book.Columns {
		headers = append(headers, c.Label)
	}

	rows := make([][]string, 0, len(p.Items))
	for _, rec := range p.Items {
		cells := rec.Cells()
		for i := range cells {
			cells[i] = truncate(cells[i], maxCellWidth)
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	footer := fmt.Sprintf("Page %d of %d (%d books)", p.Number, p.PageCount, p.Total)
	return t.String() + "\n" + footerStyle.Render(footer)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
