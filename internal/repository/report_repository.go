package repository

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

// ReportRepository owns the ordered report collection. Newest reports sit at
// the front; that ordering is the display invariant. Every mutation flushes
// the whole collection to the blob store; flush failures are logged and the
// in-memory state stays authoritative.
type ReportRepository struct {
	mu      sync.RWMutex
	reports []model.Report
	kv      storage.KV
}

func NewReportRepository(kv storage.KV) *ReportRepository {
	return &ReportRepository{kv: kv}
}

// Load reads the persisted collection. A missing or unreadable blob falls
// back to the seed data set.
func (r *ReportRepository) Load() {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, found, err := r.kv.Get(storage.KeyReports)
	if err != nil {
		log.Printf("reports: load failed, using seed data: %v", err)
		r.reports = storage.SeedReports()
		return
	}
	if !found {
		r.reports = storage.SeedReports()
		return
	}

	var reports []model.Report
	if err := json.Unmarshal(value, &reports); err != nil {
		log.Printf("reports: corrupt blob, using seed data: %v", err)
		r.reports = storage.SeedReports()
		return
	}
	r.reports = reports
}

// Insert prepends the report and flushes.
func (r *ReportRepository) Insert(report model.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append([]model.Report{report}, r.reports...)
	r.flush()
}

func (r *ReportRepository) FindByID(id uuid.UUID) (model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return model.Report{}, ErrNotFound
}

// UpdateStatus replaces only the status field and returns the post-mutation
// report so notification dispatch never works from a stale snapshot.
func (r *ReportRepository) UpdateStatus(id uuid.UUID, status model.ReportStatus) (model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
			r.flush()
			return r.reports[i], nil
		}
	}
	return model.Report{}, ErrNotFound
}

// AppendComment appends in arrival order and returns the post-mutation report.
func (r *ReportRepository) AppendComment(id uuid.UUID, comment model.Comment) (model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Comments = append(r.reports[i].Comments, comment)
			r.flush()
			return r.reports[i], nil
		}
	}
	return model.Report{}, ErrNotFound
}

// All returns a snapshot of the collection, newest first.
func (r *ReportRepository) All() []model.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// flush must be called with the write lock held.
func (r *ReportRepository) flush() {
	value, err := json.Marshal(r.reports)
	if err != nil {
		log.Printf("reports: marshal failed: %v", err)
		return
	}
	if err := r.kv.Set(storage.KeyReports, value); err != nil {
		log.Printf("reports: save failed: %v", err)
	}
}
