package service_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/service"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

type testEnv struct {
	reportService    *service.ReportService
	notificationRepo *repository.NotificationRepository
	reportRepo       *repository.ReportRepository
}

// newTestEnv wires the services against the in-memory blob store with an
// empty report collection and no broker.
func newTestEnv() *testEnv {
	kv := storage.NewMemory()
	reportRepo := repository.NewReportRepository(kv)
	notificationRepo := repository.NewNotificationRepository(kv)
	notificationService := service.NewNotificationService(notificationRepo, nil)
	return &testEnv{
		reportService:    service.NewReportService(reportRepo, notificationService, nil),
		notificationRepo: notificationRepo,
		reportRepo:       reportRepo,
	}
}

func student(identifier string) *model.User {
	return &model.User{Name: "Budi Hartono", Identifier: identifier, Role: model.RoleMahasiswa}
}

func admin() *model.User {
	return &model.User{Name: "Admin Fasilkom", Identifier: "admin1", Role: model.RoleAdmin}
}

func draft() *model.CreateReportRequest {
	return &model.CreateReportRequest{
		Location:    "Perpustakaan Pusat",
		Category:    "Kerusakan AC",
		Description: "AC tidak dingin sama sekali.",
		Urgency:     model.UrgencyTinggi,
	}
}

func TestSubmit_CreatesPendingReportAndNotifiesAuthor(t *testing.T) {
	env := newTestEnv()

	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, report.Status)
	assert.Equal(t, "budi", report.UserIdentifier)
	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Empty(t, report.Comments)

	notifications := env.notificationRepo.ForRecipient("budi")
	require.Len(t, notifications, 1)
	assert.Equal(t, model.KindSuccess, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "Kerusakan AC di Perpustakaan Pusat")
	assert.Contains(t, notifications[0].Message, "Pending")
	assert.False(t, notifications[0].IsRead)
}

func TestSubmit_InsertsNewestFirst(t *testing.T) {
	env := newTestEnv()

	first, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)
	second, err := env.reportService.Submit(draft(), student("citra"))
	require.NoError(t, err)

	reports := env.reportRepo.All()
	require.Len(t, reports, 2)
	assert.Equal(t, second.ID, reports[0].ID)
	assert.Equal(t, first.ID, reports[1].ID)
}

func TestSubmit_RejectsMissingRequiredFields(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name   string
		mutate func(req *model.CreateReportRequest, author *model.User)
	}{
		{"empty location", func(req *model.CreateReportRequest, _ *model.User) { req.Location = "   " }},
		{"empty description", func(req *model.CreateReportRequest, _ *model.User) { req.Description = "" }},
		{"empty author name", func(_ *model.CreateReportRequest, author *model.User) { author.Name = " " }},
		{"empty author identifier", func(_ *model.CreateReportRequest, author *model.User) { author.Identifier = "" }},
		{"invalid urgency", func(req *model.CreateReportRequest, _ *model.User) { req.Urgency = "Sangat Tinggi" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := draft()
			author := student("budi")
			tc.mutate(req, author)

			_, err := env.reportService.Submit(req, author)
			assert.Error(t, err)
		})
	}

	// Rejected submissions leave no partial state behind.
	assert.Empty(t, env.reportRepo.All())
	assert.Empty(t, env.notificationRepo.ForRecipient("budi"))
}

// TestUpdateStatus_AnyTransitionAllowed verifies the status graph is
// unrestricted: every (from, to) pair succeeds.
func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	statuses := []model.ReportStatus{model.StatusPending, model.StatusInProgress, model.StatusResolved}
	for _, from := range statuses {
		for _, to := range statuses {
			_, err := env.reportService.UpdateStatus(report.ID, from)
			require.NoError(t, err)

			updated, err := env.reportService.UpdateStatus(report.ID, to)
			require.NoError(t, err)
			assert.Equal(t, to, updated.Status)
		}
	}
}

func TestUpdateStatus_NotifiesAuthor(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	_, err = env.reportService.UpdateStatus(report.ID, model.StatusInProgress)
	require.NoError(t, err)

	notifications := env.notificationRepo.ForRecipient("budi")
	require.Len(t, notifications, 2) // submit success + status info
	assert.Equal(t, model.KindInfo, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "In Progress")
	assert.Contains(t, notifications[0].Message, report.Category)
}

func TestUpdateStatus_UnknownIDChangesNothing(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)
	before := env.notificationRepo.ForRecipient("budi")

	_, err = env.reportService.UpdateStatus(uuid.New(), model.StatusResolved)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := env.reportRepo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, len(before), len(env.notificationRepo.ForRecipient("budi")))
}

func TestUpdateStatus_InvalidStatusRejected(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	_, err = env.reportService.UpdateStatus(report.ID, "Ditolak")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestAddComment_PreservesInsertionOrder(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := env.reportService.AddComment(report.ID, student("budi"), fmt.Sprintf("komentar %d", i))
		require.NoError(t, err)
	}

	got, err := env.reportRepo.FindByID(report.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, n)
	for i, comment := range got.Comments {
		assert.Equal(t, fmt.Sprintf("komentar %d", i), comment.Text)
	}
}

func TestAddComment_AdminNotifiesAuthorWithTruncatedPreview(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	long := strings.Repeat("a", 45)
	_, err = env.reportService.AddComment(report.ID, admin(), long)
	require.NoError(t, err)

	notifications := env.notificationRepo.ForRecipient("budi")
	require.Len(t, notifications, 2) // submit success + admin comment
	assert.Equal(t, model.KindInfo, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, strings.Repeat("a", 30)+"...")
	assert.NotContains(t, notifications[0].Message, strings.Repeat("a", 31))
}

func TestAddComment_ShortAdminCommentKeptVerbatim(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	_, err = env.reportService.AddComment(report.ID, admin(), "Segera dicek.")
	require.NoError(t, err)

	notifications := env.notificationRepo.ForRecipient("budi")
	require.Len(t, notifications, 2)
	assert.Contains(t, notifications[0].Message, "\"Segera dicek.\"")
	assert.NotContains(t, notifications[0].Message, "...")
}

func TestAddComment_NonAdminNeverNotifies(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	commenter := &model.User{Name: "Citra Lestari", Identifier: "citra", Role: model.RoleDosen}
	_, err = env.reportService.AddComment(report.ID, commenter, "Saya juga mengalami hal yang sama.")
	require.NoError(t, err)

	notifications := env.notificationRepo.ForRecipient("budi")
	assert.Len(t, notifications, 1) // only the submit success
}

func TestAddComment_EmptyTextRejected(t *testing.T) {
	env := newTestEnv()
	report, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	_, err = env.reportService.AddComment(report.ID, admin(), "   \n\t")
	assert.Error(t, err)

	got, err := env.reportRepo.FindByID(report.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)
}

func TestAddComment_UnknownReportChangesNothing(t *testing.T) {
	env := newTestEnv()
	_, err := env.reportService.Submit(draft(), student("budi"))
	require.NoError(t, err)

	_, err = env.reportService.AddComment(uuid.New(), admin(), "halo")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, env.notificationRepo.ForRecipient("budi"), 1)
}

// TestReportLifecycleScenario walks the submit-then-triage flow end to end:
// one report by u1, then an admin moves it to In Progress.
func TestReportLifecycleScenario(t *testing.T) {
	env := newTestEnv()

	report, err := env.reportService.Submit(&model.CreateReportRequest{
		Location:    "Kantin",
		Category:    "Kebersihan",
		Description: "Meja kantin kotor.",
		Urgency:     model.UrgencySedang,
	}, &model.User{Name: "Urip", Identifier: "u1", Role: model.RoleMahasiswa})
	require.NoError(t, err)

	reports := env.reportRepo.All()
	require.Len(t, reports, 1)
	assert.Equal(t, model.StatusPending, reports[0].Status)

	notifications := env.notificationRepo.ForRecipient("u1")
	require.Len(t, notifications, 1)
	assert.Equal(t, model.KindSuccess, notifications[0].Kind)

	updated, err := env.reportService.UpdateStatus(report.ID, model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)

	notifications = env.notificationRepo.ForRecipient("u1")
	require.Len(t, notifications, 2)
	assert.Equal(t, model.KindInfo, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "In Progress")
}
