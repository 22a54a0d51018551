// Package storage persists the application's collections as keyed JSON
// blobs. The keys match the ones the original web client used, so state
// exported from it stays readable.
package storage

const (
	KeyReports       = "campusReports-shared"
	KeyUsers         = "campusUsers"
	KeyNotifications = "campusNotifications"
)

// KV is the persistence boundary: whole-collection JSON documents under
// fixed keys. Get reports absence via the second return value rather than an
// error so callers can distinguish "never saved" from a real failure.
type KV interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
}
