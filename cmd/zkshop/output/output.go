package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, infoStyle.Render("ℹ ")+fmt.Sprintf(format, args...))
}

func Muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Pounds formats pence as £12.00.
func Pounds(pence int64) string {
	return "£" + decimal.New(pence, -2).StringFixed(2)
}

func flags(age18, uk bool) string {
	switch {
	case age18 && uk:
		return "18+ UK"
	case age18:
		return "18+"
	case uk:
		return "UK"
	default:
		return ""
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func Products(w io.Writer, products []tables.Product) {
	if len(products) == 0 {
		Muted(w, "No products")
		return
	}
	t := newTable("ID", "Title", "Price", "Seller", "Requires")
	for _, p := range products {
		t.Row(strconv.FormatInt(p.ID, 10), p.Title, Pounds(p.PricePence), p.Seller, flags(p.RequireAge18, p.RequireUK))
	}
	fmt.Fprintln(w, t.Render())
}

func Cart(w io.Writer, view *structs.CartView) {
	Info(w, "Cart %s", view.Session)
	if len(view.Lines) == 0 {
		Muted(w, "Empty")
		return
	}
	t := newTable("ID", "Title", "Qty", "Total", "Requires")
	for _, l := range view.Lines {
		t.Row(strconv.FormatInt(l.Item.ID, 10), l.Item.Title, strconv.Itoa(l.Quantity), Pounds(l.TotalPence),
			flags(l.Item.RequireAge18, l.Item.RequireUK))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d item(s), total %s\n", view.Count, Pounds(view.TotalPence))
}
