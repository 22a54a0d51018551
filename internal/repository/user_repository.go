package repository

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/storage"
)

// UserRepository owns the registered-user collection. Identifiers are unique
// case-insensitively; uniqueness is enforced at creation.
type UserRepository struct {
	mu    sync.RWMutex
	users []model.StoredUser
	kv    storage.KV
}

func NewUserRepository(kv storage.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

// Load reads the persisted collection; a missing or unreadable blob starts
// empty.
func (r *UserRepository) Load() {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, found, err := r.kv.Get(storage.KeyUsers)
	if err != nil {
		log.Printf("users: load failed, starting empty: %v", err)
		r.users = nil
		return
	}
	if !found {
		r.users = nil
		return
	}

	var users []model.StoredUser
	if err := json.Unmarshal(value, &users); err != nil {
		log.Printf("users: corrupt blob, starting empty: %v", err)
		r.users = nil
		return
	}
	r.users = users
}

// Create appends the user. Returns ErrAlreadyExists when the identifier is
// taken in any casing; the collection is left unchanged in that case.
func (r *UserRepository) Create(user model.StoredUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Identifier, user.Identifier) {
			return ErrAlreadyExists
		}
	}
	r.users = append(r.users, user)
	r.flush()
	return nil
}

// FindByIdentifier performs a case-insensitive identifier lookup.
func (r *UserRepository) FindByIdentifier(identifier string) (model.StoredUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Identifier, identifier) {
			return user, nil
		}
	}
	return model.StoredUser{}, ErrNotFound
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// flush must be called with the write lock held.
func (r *UserRepository) flush() {
	value, err := json.Marshal(r.users)
	if err != nil {
		log.Printf("users: marshal failed: %v", err)
		return
	}
	if err := r.kv.Set(storage.KeyUsers, value); err != nil {
		log.Printf("users: save failed: %v", err)
	}
}
