package service

import (
	"strings"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

// Categories returns the category list offered to clients. The report field
// itself stays free-form.
func Categories() []string {
	return append([]string(nil), storage.ReportCategories...)
}

// FilterReports is a pure derivation over a report snapshot: same inputs,
// same output, no side effects. Relative order is preserved.
func FilterReports(reports []model.Report, filter model.ReportFilter) []model.Report {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var out []model.Report
	for _, report := range reports {
		if filter.Category != "" && report.Category != filter.Category {
			continue
		}
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if query != "" && !matchesQuery(&report, query) {
			continue
		}
		out = append(out, report)
	}
	return out
}

// matchesQuery reports whether any searchable field contains the lowercased
// query as a substring.
func matchesQuery(report *model.Report, query string) bool {
	fields := []string{
		report.Name,
		report.UserIdentifier,
		report.Location,
		report.SpecificLocation,
		report.Description,
		report.Category,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
