package model

type Role string

const (
	RoleMahasiswa Role = "Mahasiswa"
	RoleDosen     Role = "Dosen"
	RolePegawai   Role = "Pegawai"
	RoleAdmin     Role = "Admin"
)

// ValidRole reports whether r is one of the known roles. Registration
// additionally rejects Admin; that role belongs to the configured credential
// pair only.
func ValidRole(r Role) bool {
	switch r {
	case RoleMahasiswa, RoleDosen, RolePegawai, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account. Identifier is unique case-insensitively and
// immutable after registration.
type User struct {
	Name         string `json:"name"`
	Identifier   string `json:"userIdentifier"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// StoredUser is the persisted form of User. The hash travels under its own
// key so it never leaks through API responses that serialize User.
type StoredUser struct {
	Name         string `json:"name"`
	Identifier   string `json:"userIdentifier"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
}

// Request/Response
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Identifier string `json:"userIdentifier" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       Role   `json:"role" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"userIdentifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
