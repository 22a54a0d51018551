package repository

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

// NotificationRepository owns the global notification list, newest first.
// Notifications are never deleted; the only mutation after creation is the
// per-recipient read flag.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []model.Notification
	kv            storage.KV
}

func NewNotificationRepository(kv storage.KV) *NotificationRepository {
	return &NotificationRepository{kv: kv}
}

// Load reads the persisted collection; a missing or unreadable blob starts
// empty.
func (r *NotificationRepository) Load() {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, found, err := r.kv.Get(storage.KeyNotifications)
	if err != nil {
		log.Printf("notifications: load failed, starting empty: %v", err)
		r.notifications = nil
		return
	}
	if !found {
		r.notifications = nil
		return
	}

	var notifications []model.Notification
	if err := json.Unmarshal(value, &notifications); err != nil {
		log.Printf("notifications: corrupt blob, starting empty: %v", err)
		r.notifications = nil
		return
	}
	r.notifications = notifications
}

// Create prepends the notification and flushes.
func (r *NotificationRepository) Create(n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append([]model.Notification{n}, r.notifications...)
	r.flush()
}

// ForRecipient returns the recipient's notifications, newest first.
func (r *NotificationRepository) ForRecipient(identifier string) []model.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Notification
	for _, n := range r.notifications {
		if n.UserIdentifier == identifier {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (r *NotificationRepository) UnreadCount(identifier string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if n.UserIdentifier == identifier && !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAllRead flags every notification for the recipient as read. Idempotent.
func (r *NotificationRepository) MarkAllRead(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	for i := range r.notifications {
		if r.notifications[i].UserIdentifier == identifier && !r.notifications[i].IsRead {
			r.notifications[i].IsRead = true
			changed = true
		}
	}
	if changed {
		r.flush()
	}
}

// flush must be called with the write lock held.
func (r *NotificationRepository) flush() {
	value, err := json.Marshal(r.notifications)
	if err != nil {
		log.Printf("notifications: marshal failed: %v", err)
		return
	}
	if err := r.kv.Set(storage.KeyNotifications, value); err != nil {
		log.Printf("notifications: save failed: %v", err)
	}
}
