package domain

import "time"

// Role is the authorization tier of a user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperadmin Role = "SUPERADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperadmin:
		return 3
	}
	return 0
}

// CanManage reports whether a caller holding r may modify an account holding
// target. SUPERADMIN manages every account; other roles only manage accounts
// ranked strictly below their own.
func (r Role) CanManage(target Role) bool {
	if r == RoleSuperadmin {
		return true
	}
	return r.rank() > target.rank()
}

// User models an account in the catalog.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the authorization attributes of u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}

// Identity is the verified caller of a request. It only carries what
// authorization decisions need.
type Identity struct {
	ID   string
	Role Role
}

// UserUpdate holds the optional fields of a profile change. Nil means unchanged.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}
