package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
)

const commentPreviewLimit = 30

// EventPublisher pushes report events to the broker. A nil publisher is
// valid; events are simply skipped and never block a mutation.
type EventPublisher interface {
	PublishReportCreated(msg model.ReportCreatedMessage) error
	PublishStatusUpdate(msg model.StatusUpdateMessage) error
	PublishCommentAdded(msg model.CommentAddedMessage) error
}

type ReportService struct {
	reportRepo          *repository.ReportRepository
	notificationService *NotificationService
	publisher           EventPublisher
}

func NewReportService(reportRepo *repository.ReportRepository, notificationService *NotificationService, publisher EventPublisher) *ReportService {
	return &ReportService{
		reportRepo:          reportRepo,
		notificationService: notificationService,
		publisher:           publisher,
	}
}

// Submit validates the draft, stores it with Pending status at the front of
// the collection, and notifies the author.
func (s *ReportService) Submit(req *model.CreateReportRequest, author *model.User) (*model.Report, error) {
	name := strings.TrimSpace(author.Name)
	identifier := strings.TrimSpace(author.Identifier)
	location := strings.TrimSpace(req.Location)
	description := strings.TrimSpace(req.Description)
	if name == "" || identifier == "" {
		return nil, errors.New("author name and identifier are required")
	}
	if location == "" {
		return nil, errors.New("location is required")
	}
	if description == "" {
		return nil, errors.New("description is required")
	}
	if !model.ValidUrgency(req.Urgency) {
		return nil, errors.New("invalid urgency")
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	report := model.Report{
		ID:               uuid.New(),
		Name:             name,
		UserIdentifier:   identifier,
		Location:         location,
		SpecificLocation: strings.TrimSpace(req.SpecificLocation),
		Category:         strings.TrimSpace(req.Category),
		Description:      description,
		Status:           model.StatusPending,
		SubmittedAt:      time.Now(),
		Urgency:          req.Urgency,
		Photos:           photos,
		Comments:         []model.Comment{},
	}

	s.reportRepo.Insert(report)

	s.notificationService.Notify(
		report.UserIdentifier,
		fmt.Sprintf("Laporan Anda \"%s di %s\" berhasil dikirim dan statusnya \"Pending\".", report.Category, report.Location),
		model.KindSuccess,
	)

	if s.publisher != nil {
		go func() {
			msg := model.ReportCreatedMessage{
				ReportID:     report.ID.String(),
				Category:     report.Category,
				Location:     report.Location,
				Urgency:      string(report.Urgency),
				ReporterID:   report.UserIdentifier,
				ReporterName: report.Name,
				Timestamp:    time.Now().Unix(),
			}
			if err := s.publisher.PublishReportCreated(msg); err != nil {
				log.Printf("publish report created: %v", err)
			}
		}()
	}

	return &report, nil
}

// UpdateStatus replaces the status of an existing report and notifies its
// author. Any status is reachable from any other. An unknown id returns
// repository.ErrNotFound with no state change and no notification.
func (s *ReportService) UpdateStatus(id uuid.UUID, status model.ReportStatus) (*model.Report, error) {
	if !model.ValidStatus(status) {
		return nil, errors.New("invalid status")
	}

	report, err := s.reportRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	s.notificationService.Notify(
		report.UserIdentifier,
		fmt.Sprintf("Status laporan \"%s\" Anda telah diperbarui menjadi: %s", report.Category, status),
		model.KindInfo,
	)

	if s.publisher != nil {
		go func() {
			msg := model.StatusUpdateMessage{
				ReportID:   report.ID.String(),
				Category:   report.Category,
				NewStatus:  string(status),
				ReporterID: report.UserIdentifier,
				Timestamp:  time.Now().Unix(),
			}
			if err := s.publisher.PublishStatusUpdate(msg); err != nil {
				log.Printf("publish status update: %v", err)
			}
		}()
	}

	return &report, nil
}

// AddComment appends a comment in arrival order. When the commenter is an
// admin, the report's author is notified with a preview of the text;
// comments by non-admins never notify.
func (s *ReportService) AddComment(reportID uuid.UUID, actor *model.User, text string) (*model.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("comment text is required")
	}

	comment := model.Comment{
		ID:        uuid.New(),
		UserName:  actor.Name,
		UserRole:  actor.Role,
		Text:      text,
		Timestamp: time.Now(),
	}

	report, err := s.reportRepo.AppendComment(reportID, comment)
	if err != nil {
		return nil, err
	}

	if actor.Role == model.RoleAdmin {
		preview := truncatePreview(text)
		s.notificationService.Notify(
			report.UserIdentifier,
			fmt.Sprintf("Admin menanggapi laporan \"%s\": \"%s\"", report.Category, preview),
			model.KindInfo,
		)

		if s.publisher != nil {
			go func() {
				msg := model.CommentAddedMessage{
					ReportID:   report.ID.String(),
					Category:   report.Category,
					ReporterID: report.UserIdentifier,
					AuthorName: actor.Name,
					AuthorRole: string(actor.Role),
					Preview:    preview,
					Timestamp:  time.Now().Unix(),
				}
				if err := s.publisher.PublishCommentAdded(msg); err != nil {
					log.Printf("publish comment added: %v", err)
				}
			}()
		}
	}

	return &report, nil
}

// ListReports returns the filtered collection, newest first.
func (s *ReportService) ListReports(filter model.ReportFilter) *model.ReportListResponse {
	reports := FilterReports(s.reportRepo.All(), filter)
	if reports == nil {
		reports = []model.Report{}
	}

	return &model.ReportListResponse{
		Reports: reports,
		Total:   len(reports),
	}
}

func (s *ReportService) GetReport(id uuid.UUID) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// truncatePreview keeps the first 30 characters of a comment and appends an
// ellipsis when the original is longer.
func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= commentPreviewLimit {
		return text
	}
	return string(runes[:commentPreviewLimit]) + "..."
}
