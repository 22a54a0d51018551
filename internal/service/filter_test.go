package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/service"
)

func sampleReports() []model.Report {
	return []model.Report{
		{
			Name:             "Budi Hartono",
			UserIdentifier:   "budi01",
			Location:         "Gedung A",
			SpecificLocation: "Lantai 3, Ruang 301",
			Description:      "AC bocor dan menetes ke lantai.",
			Category:         "Kerusakan AC",
			Status:           model.StatusPending,
		},
		{
			Name:             "Citra Lestari",
			UserIdentifier:   "citra02",
			Location:         "Kantin",
			SpecificLocation: "Dekat kasir",
			Description:      "Meja kantin kotor.",
			Category:         "Kebersihan",
			Status:           model.StatusInProgress,
		},
		{
			Name:             "Dewi Anggraini",
			UserIdentifier:   "dewi03",
			Location:         "Gedung B",
			SpecificLocation: "Ruang Seminar",
			Description:      "Proyektor tidak menyala.",
			Category:         "Peralatan Kelas",
			Status:           model.StatusResolved,
		},
	}
}

func TestFilterReports_NoFilterReturnsAllInOrder(t *testing.T) {
	reports := sampleReports()

	got := service.FilterReports(reports, model.ReportFilter{})

	require.Len(t, got, 3)
	assert.Equal(t, "budi01", got[0].UserIdentifier)
	assert.Equal(t, "citra02", got[1].UserIdentifier)
	assert.Equal(t, "dewi03", got[2].UserIdentifier)
}

// Every searchable field participates in the free-text match.
func TestFilterReports_QueryMatchesAnySearchableField(t *testing.T) {
	reports := sampleReports()

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"name", "Citra", "citra02"},
		{"identifier", "dewi03", "dewi03"},
		{"location", "Kantin", "citra02"},
		{"specific location", "Seminar", "dewi03"},
		{"description", "bocor", "budi01"},
		{"category", "Peralatan", "dewi03"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.FilterReports(reports, model.ReportFilter{Query: tc.query})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].UserIdentifier)
		})
	}
}

func TestFilterReports_QueryIsCaseInsensitive(t *testing.T) {
	reports := sampleReports()

	lower := service.FilterReports(reports, model.ReportFilter{Query: "kantin"})
	upper := service.FilterReports(reports, model.ReportFilter{Query: "KANTIN"})

	require.Len(t, lower, 1)
	assert.Equal(t, lower, upper)
}

func TestFilterReports_CategoryAndStatusAreExactMatches(t *testing.T) {
	reports := sampleReports()

	byCategory := service.FilterReports(reports, model.ReportFilter{Category: "Kebersihan"})
	require.Len(t, byCategory, 1)
	assert.Equal(t, "citra02", byCategory[0].UserIdentifier)

	byStatus := service.FilterReports(reports, model.ReportFilter{Status: model.StatusResolved})
	require.Len(t, byStatus, 1)
	assert.Equal(t, "dewi03", byStatus[0].UserIdentifier)

	// Status values are exact, not case-folded.
	assert.Empty(t, service.FilterReports(reports, model.ReportFilter{Status: "pending"}))
}

func TestFilterReports_CombinedCriteriaIntersect(t *testing.T) {
	reports := sampleReports()

	got := service.FilterReports(reports, model.ReportFilter{
		Query:    "gedung",
		Status:   model.StatusPending,
		Category: "Kerusakan AC",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "budi01", got[0].UserIdentifier)

	got = service.FilterReports(reports, model.ReportFilter{
		Query:  "gedung",
		Status: model.StatusInProgress,
	})
	assert.Empty(t, got)
}

// FilterReports is a pure derivation: repeated calls on the same snapshot
// return the same result and never mutate the input.
func TestFilterReports_DoesNotMutateInput(t *testing.T) {
	reports := sampleReports()
	filter := model.ReportFilter{Query: "gedung"}

	first := service.FilterReports(reports, filter)
	second := service.FilterReports(reports, filter)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleReports(), reports)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	categories := service.Categories()
	require.NotEmpty(t, categories)
	assert.Contains(t, categories, "Kebersihan")

	categories[0] = "tampered"
	assert.NotEqual(t, "tampered", service.Categories()[0])
}
