package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	StatusPending    ReportStatus = "Pending"
	StatusInProgress ReportStatus = "In Progress"
	StatusResolved   ReportStatus = "Resolved"
)

func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type ReportUrgency string

const (
	UrgencyRendah ReportUrgency = "Rendah"
	UrgencySedang ReportUrgency = "Sedang"
	UrgencyTinggi ReportUrgency = "Tinggi"
)

func ValidUrgency(u ReportUrgency) bool {
	switch u {
	case UrgencyRendah, UrgencySedang, UrgencyTinggi:
		return true
	}
	return false
}

// Comment is a threaded reply on a report. Immutable once appended.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"userName"`
	UserRole  Role      `json:"userRole"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Report is a single facility-issue submission. The author fields are fixed
// at creation; only Status and Comments change afterwards.
type Report struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	UserIdentifier   string        `json:"userIdentifier"`
	Location         string        `json:"location"`
	SpecificLocation string        `json:"specificLocation,omitempty"`
	Category         string        `json:"category"`
	Description      string        `json:"description"`
	Status           ReportStatus  `json:"status"`
	SubmittedAt      time.Time     `json:"submittedAt"`
	Urgency          ReportUrgency `json:"urgency"`
	Photos           []string      `json:"photos"` // base64-encoded images
	Comments         []Comment     `json:"comments"`
}

// Request/Response DTOs
type CreateReportRequest struct {
	Location         string        `json:"location" binding:"required"`
	SpecificLocation string        `json:"specificLocation"`
	Category         string        `json:"category" binding:"required"`
	Description      string        `json:"description" binding:"required"`
	Urgency          ReportUrgency `json:"urgency" binding:"required"`
	Photos           []string      `json:"photos"`
}

type UpdateStatusRequest struct {
	Status ReportStatus `json:"status" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ReportListResponse struct {
	Reports []Report `json:"reports"`
	Total   int      `json:"total"`
}

// ReportFilter narrows a report listing. Zero values mean "no constraint".
type ReportFilter struct {
	Query    string
	Category string
	Status   ReportStatus
}
