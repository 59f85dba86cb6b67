package auth

import "fmt"

// Role is the closed set of account roles. Authorization decisions switch on
// this type rather than comparing raw strings from the token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePartner  Role = "partner"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePartner, RoleDriver, RoleCustomer:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// CanManageFleet reports whether the role may create or edit vehicles.
func (r Role) CanManageFleet() bool {
	return r == RoleAdmin || r == RolePartner
}
