package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
)

// Notification is a one-way message to a specific user about a report event.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	UserIdentifier string           `json:"userIdentifier"`
	Message        string           `json:"message"`
	Kind           NotificationKind `json:"type"`
	IsRead         bool             `json:"isRead"`
	Timestamp      time.Time        `json:"timestamp"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

// Event messages published to the broker alongside report mutations.

type ReportCreatedMessage struct {
	ReportID     string `json:"report_id"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Urgency      string `json:"urgency"`
	ReporterID   string `json:"reporter_id"`
	ReporterName string `json:"reporter_name"`
	Timestamp    int64  `json:"timestamp"`
}

type StatusUpdateMessage struct {
	ReportID   string `json:"report_id"`
	Category   string `json:"category"`
	NewStatus  string `json:"new_status"`
	ReporterID string `json:"reporter_id"`
	Timestamp  int64  `json:"timestamp"`
}

type CommentAddedMessage struct {
	ReportID   string `json:"report_id"`
	Category   string `json:"category"`
	ReporterID string `json:"reporter_id"`
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
	Preview    string `json:"preview"`
	Timestamp  int64  `json:"timestamp"`
}
