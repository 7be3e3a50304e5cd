package entity

import "strings"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// ParseUserRole maps a stored value to a role; anything unknown is a customer.
func ParseUserRole(s string) UserRole {
	if UserRole(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

type User struct {
	Base
	Email    string   `db:"email"`
	Name     string   `db:"name"`
	Phone    string   `db:"phone"`
	Address  string   `db:"address"`
	PhotoURL string   `db:"photo_url"`
	Role     UserRole `db:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
