// Package user holds the identity types the engine trusts from the external
// identity provider. There is no account management here; only enough to
// authorize lifecycle operations.
package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	// RoleMember is a shareholder of one or more cars.
	RoleMember Role = "member"
	// RoleAdmin may accept/reject bookings on behalf of the platform.
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}
