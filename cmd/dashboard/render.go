package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/magabrotheeeer/payment-dashboard/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)

	statusColors = map[models.PaymentStatus]lipgloss.Color{
		models.StatusCompleted:  lipgloss.Color("2"),
		models.StatusProcessing: lipgloss.Color("3"),
		models.StatusFailed:     lipgloss.Color("1"),
	}
)

// renderPayments печатает страницу платежей таблицей и строку сводки.
// Колонка reviewed показывается только ролям, которым доступно ревью.
func renderPayments(w io.Writer, list *models.PaymentList, showReviewed bool) {
	headers := []string{"ID", "MERCHANT", "DATE", "AMOUNT", "STATUS"}
	if showReviewed {
		headers = append(headers, "REVIEWED")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, p := range list.Meta.Data {
		status := lipgloss.NewStyle().Foreground(statusColors[p.Status]).Render(string(p.Status))
		row := []string{
			p.ID,
			p.MerchantName,
			p.Date.Format("2006-01-02"),
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			status,
		}
		if showReviewed {
			reviewed := "no"
			if p.Reviewed {
				reviewed = "yes"
			}
			row = append(row, reviewed)
		}
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("page %d/%d, %d per page", list.Meta.Page, list.Meta.TotalPages, list.Meta.Size)))
	fmt.Fprintf(w, "Total: %d  Completed: %d  Processing: %d  Failed: %d\n",
		list.Summary.Total, list.Summary.Completed, list.Summary.Processing, list.Summary.Failed)
}
