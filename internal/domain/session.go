package domain

import (
	"encoding/json"
	"time"
)

// Role is a dashboard role of a signed-in user
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDoctor        Role = "doctor"
	RoleLabTechnician Role = "lab_technician"
	RolePharmacist    Role = "pharmacist"
	RoleReceptionist  Role = "receptionist"
)

// Roles lists every supported role
var Roles = []Role{
	RoleAdmin,
	RoleDoctor,
	RoleLabTechnician,
	RolePharmacist,
	RoleReceptionist,
}

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is what a signed-in dashboard keeps between requests.
// Profile is the role-specific blob returned by the backend at login and is kept opaque.
type Session struct {
	ID        string          `json:"-"`
	Token     string          `json:"token"`
	Role      Role            `json:"role"`
	Username  string          `json:"username"`
	Profile   json.RawMessage `json:"profile,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
