package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
)

// ReportCategories is the fixed category list offered by the client. The
// category field itself stays free-form.
var ReportCategories = []string{
	"Kebersihan",
	"Kerusakan AC",
	"Fasilitas Belajar",
	"Penerangan",
	"Kerusakan Toilet",
	"Keamanan",
	"Lainnya",
}

// SeedReports returns the initial data set used when no reports blob exists
// yet or the stored one cannot be parsed.
func SeedReports() []model.Report {
	now := time.Now()
	return []model.Report{
		{
			ID:               uuid.New(),
			Name:             "Budi Hartono",
			UserIdentifier:   "budi.hartono@email.com",
			Location:         "Perpustakaan Pusat",
			SpecificLocation: "Ruang Baca Lantai 2, dekat rak buku fiksi",
			Category:         "Kerusakan AC",
			Description:      "AC di lantai 2 tidak dingin sama sekali, sangat panas dan tidak nyaman untuk belajar.",
			Status:           model.StatusPending,
			SubmittedAt:      now.Add(-2 * 24 * time.Hour),
			Urgency:          model.UrgencyTinggi,
			Photos:           []string{},
			Comments: []model.Comment{
				{
					ID:        uuid.New(),
					UserName:  "Admin Fasilkom",
					UserRole:  model.RoleAdmin,
					Text:      "Terima kasih laporannya. Teknisi akan segera mengecek ke lokasi siang ini.",
					Timestamp: now.Add(-1 * 24 * time.Hour),
				},
			},
		},
		{
			ID:             uuid.New(),
			Name:           "Citra Lestari",
			UserIdentifier: "citralestari",
			Location:       "Kantin Pusat (Food Court)",
			Category:       "Kebersihan",
			Description:    "Banyak sampah berserakan di bawah meja dan tidak ada petugas yang membersihkan.",
			Status:         model.StatusInProgress,
			SubmittedAt:    now.Add(-1 * 24 * time.Hour),
			Urgency:        model.UrgencySedang,
			Photos:         []string{},
			Comments:       []model.Comment{},
		},
		{
			ID:               uuid.New(),
			Name:             "Dewi Anggraini",
			UserIdentifier:   "d.anggraini@email.com",
			Location:         "Fakultas Teknik - Gedung A",
			SpecificLocation: "Ruang Kelas T-201",
			Category:         "Fasilitas Belajar",
			Description:      "Proyektor di ruang kelas T-201 mati dan tidak bisa digunakan untuk presentasi.",
			Status:           model.StatusResolved,
			SubmittedAt:      now.Add(-5 * 24 * time.Hour),
			Urgency:          model.UrgencyRendah,
			Photos:           []string{},
			Comments:         []model.Comment{},
		},
	}
}
