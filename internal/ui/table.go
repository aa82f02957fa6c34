package ui

import (
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
	"github.com/pterm/pterm"
)

// TableHeader is the first row of every provider table.
var TableHeader = []string{"Язык программирования", "Вакансий найдено", "Вакансий обработано", "Средняя зарплата"}

// TableRows lays out a report as table rows, header first, one row per
// language in report order. Statistics are printed as stored.
func TableRows(report models.ProviderReport) [][]string {
	rows := make([][]string, 0, len(report.Languages)+1)
	rows = append(rows, TableHeader)
	for _, stats := range report.Languages {
		rows = append(rows, []string{
			stats.Language,
			fmt.Sprint(stats.VacanciesFound),
			fmt.Sprint(stats.VacanciesProcessed),
			utils.FormatSalary(stats.AverageSalary),
		})
	}
	return rows
}

// RenderReport renders one provider's statistics as a table boxed under the
// report title. With colorize set the salary column is banded by value.
func RenderReport(report models.ProviderReport, colorize bool) (string, error) {
	rows := TableRows(report)
	if colorize {
		for i, stats := range report.Languages {
			rows[i+1][3] = ColorizeSalary(stats.AverageSalary)
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render %s table: %w", report.Provider, err)
	}

	if footer := FormatIncomplete(report); footer != "" {
		table += "\n" + footer
	}

	title := report.Title
	if title == "" {
		title = report.Provider
	}
	return pterm.DefaultBox.WithTitle(title).Sprint(table), nil
}

// RenderSideBySide renders each report and places them in adjacent columns.
func RenderSideBySide(reports []models.ProviderReport, colorize bool) (string, error) {
	panels := make([]pterm.Panel, 0, len(reports))
	for _, report := range reports {
		rendered, err := RenderReport(report, colorize)
		if err != nil {
			return "", err
		}
		panels = append(panels, pterm.Panel{Data: rendered})
	}

	out, err := pterm.DefaultPanel.WithPanels(pterm.Panels{panels}).WithPadding(4).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to lay out tables: %w", err)
	}
	return out, nil
}

// FormatIncomplete names the languages whose search stopped before the
// provider ran out of pages, or returns "" when every search completed.
func FormatIncomplete(report models.ProviderReport) string {
	if len(report.Incomplete) == 0 {
		return ""
	}
	return "Неполные данные: " + strings.Join(report.Incomplete, ", ")
}

// RenderListings renders individual vacancies with their salary estimate.
func RenderListings(title string, listings []models.Listing, estimates []*float64) (string, error) {
	rows := pterm.TableData{{"Вакансия", "От", "До", "Валюта", "Оценка"}}
	for i, listing := range listings {
		rows = append(rows, []string{
			truncateString(listing.Title, 60),
			formatBound(listing.SalaryFrom),
			formatBound(listing.SalaryTo),
			listing.Currency,
			utils.FormatSalary(estimates[i]),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render listings: %w", err)
	}
	return pterm.DefaultBox.WithTitle(title).Sprint(table), nil
}

func formatBound(v *int) string {
	if v == nil {
		return "-"
	}
	return utils.FormatCount(*v)
}

// truncateString truncates a string to the specified length in runes and adds "..." if necessary
func truncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}
