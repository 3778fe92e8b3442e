package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/paysnap/internal/model"
)

// RenderRecords formats records as a table with times in layout.
func RenderRecords(records []model.ExpenseRecord, layout string) string {
	if len(records) == 0 {
		return SubtleStyle.Render("No records.")
	}

	header := []string{"ID", "时间", "金额", "分类", "商户", "渠道", "备注"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			r.OccurredAt.Format(layout),
			fmt.Sprintf("%.2f", r.Amount),
			r.Category,
			r.Merchant,
			r.PayMethod,
			r.Remark,
		})
	}
	return renderTable(header, rows)
}

// RenderSummary formats per-category totals followed by the grand total.
func RenderSummary(summaries []model.CategorySummary, total float64) string {
	header := []string{"分类", "笔数", "支出"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.Category, fmt.Sprintf("%d", s.Count), fmt.Sprintf("%.2f", s.Total)})
	}

	var b strings.Builder
	b.WriteString(renderTable(header, rows))
	b.WriteString("\n")
	b.WriteString(TitleStyle.UnsetMargins().Render(fmt.Sprintf("%s 合计支出 %.2f", ChartIcon, total)))
	return b.String()
}

func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	lines := []string{renderRow(header, TableHeaderStyle)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
