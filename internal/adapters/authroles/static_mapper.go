package authroles

import (
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// StaticRoleMapper maps identity groups by simple string membership rules.
type StaticRoleMapper struct {
	AdminGroup  string
	MemberGroup string
}

// Map returns admin when the identity is in AdminGroup, member when it is in
// MemberGroup, and guest otherwise.
func (m StaticRoleMapper) Map(id ports.Identity) view.Role {
	if hasGroup(id.Groups, m.AdminGroup) {
		return view.RoleAdmin
	}
	if hasGroup(id.Groups, m.MemberGroup) {
		return view.RoleMember
	}
	return view.RoleGuest
}

func hasGroup(groups []string, want string) bool {
	if want == "" {
		return false
	}
	for _, g := range groups {
		if g == want {
			return true
		}
	}
	return false
}
