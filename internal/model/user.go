package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

type Permission string

const (
	PermProductsWrite   Permission = "products:write"
	PermCategoriesWrite Permission = "categories:write"
	PermPartnersWrite   Permission = "partners:write"
	PermBannersWrite    Permission = "banners:write"
	PermRFPRead         Permission = "rfp:read"
	PermRFPWrite        Permission = "rfp:write"
	PermUsersManage     Permission = "users:manage"
	PermImportRun       Permission = "import:run"
	PermMediaWrite      Permission = "media:write"
)

// AllPermissions is the closed set of grantable permissions.
var AllPermissions = []Permission{
	PermProductsWrite,
	PermCategoriesWrite,
	PermPartnersWrite,
	PermBannersWrite,
	PermRFPRead,
	PermRFPWrite,
	PermUsersManage,
	PermImportRun,
	PermMediaWrite,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type User struct {
	BaseModel
	Email        string       `db:"email" json:"email"`
	Name         string       `db:"name" json:"name"`
	PasswordHash string       `db:"password_hash" json:"-"`
	Role         Role         `db:"role" json:"role"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time   `db:"last_login_at" json:"last_login_at"`
	Permissions  []Permission `db:"-" json:"permissions"`
}

// Can reports whether the user holds p. Super admins hold every permission.
func (u *User) Can(p Permission) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	for _, held := range u.Permissions {
		if held == p {
			return true
		}
	}
	return false
}
