package config

import "strings"

// AuthConfig controls how a login on the public site becomes a role.
// Login only switches the visitor's view; nothing is verified.
type AuthConfig struct {
	// Accounts lists known emails and their groups: "email=group,group".
	// Entries are separated by ";".
	Accounts []string `env:"AUTH_ACCOUNTS" envSeparator:";"`

	// DefaultGroups are assigned to emails missing from Accounts.
	DefaultGroups []string `env:"AUTH_DEFAULT_GROUPS" envDefault:"members" envSeparator:","`

	// AdminExpression is an optional JMESPath expression evaluated against
	// {user_id, email, name, groups}. A truthy result grants admin.
	AdminExpression string `env:"AUTH_ADMIN_EXPRESSION"`

	// AdminGroup grants the admin role.
	AdminGroup string `env:"AUTH_ADMIN_GROUP" envDefault:"admins"`

	// MemberGroup grants the member role.
	MemberGroup string `env:"AUTH_MEMBER_GROUP" envDefault:"members"`
}

// Sanitize trims whitespace and drops empty entries.
func (a *AuthConfig) Sanitize() {
	a.Accounts = compact(a.Accounts)
	a.DefaultGroups = compact(a.DefaultGroups)
	a.AdminExpression = strings.TrimSpace(a.AdminExpression)
	a.AdminGroup = strings.TrimSpace(a.AdminGroup)
	a.MemberGroup = strings.TrimSpace(a.MemberGroup)
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
