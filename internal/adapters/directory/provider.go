// Package directory provides a config-driven IdentityProvider.
// Login on the public site only switches the visitor's view; no credential
// is verified. The directory decides which groups an email belongs to.
package directory

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// ErrInvalidEmail is returned when the login email is missing or malformed.
var ErrInvalidEmail = fmt.Errorf("%w: a valid email address is required", ports.ErrInvalidCredentials)

// userNamespace scopes deterministic user ids derived from email addresses.
//
//nolint:gochecknoglobals // fixed namespace UUID
var userNamespace = uuid.MustParse("6f1c1d7e-5d1a-4f43-9a53-5d7c2b8e0a11")

// Config controls the directory contents.
type Config struct {
	// Accounts maps a lower-cased email to its groups.
	Accounts map[string][]string
	// DefaultGroups are assigned to emails not listed in Accounts.
	DefaultGroups []string
}

// Provider implements ports.IdentityProvider over a static account list.
type Provider struct {
	accounts      map[string][]string
	defaultGroups []string
}

// NewProvider constructs a directory provider from Config.
func NewProvider(cfg Config) *Provider {
	accounts := make(map[string][]string, len(cfg.Accounts))
	for email, groups := range cfg.Accounts {
		accounts[normalizeEmail(email)] = append([]string(nil), groups...)
	}
	return &Provider{
		accounts:      accounts,
		defaultGroups: append([]string(nil), cfg.DefaultGroups...),
	}
}

// Lookup returns the identity for creds. Unknown emails get the default groups.
func (p *Provider) Lookup(_ context.Context, creds ports.Credentials) (ports.Identity, error) {
	email := normalizeEmail(creds.Email)
	if email == "" {
		return ports.Identity{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}

	groups, ok := p.accounts[email]
	if !ok {
		groups = p.defaultGroups
	}

	return ports.Identity{
		UserID: uuid.NewSHA1(userNamespace, []byte(email)).String(),
		Email:  email,
		Name:   strings.TrimSpace(creds.Name),
		Groups: append([]string(nil), groups...),
	}, nil
}

// ParseAccounts parses entries of the form "email=group,group".
// Entries without "=" list an email with no groups.
func ParseAccounts(entries []string) (map[string][]string, error) {
	out := make(map[string][]string, len(entries))
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		email, groupList, _ := strings.Cut(entry, "=")
		email = normalizeEmail(email)
		if email == "" {
			return nil, fmt.Errorf("account entry %q: missing email", entry)
		}
		var groups []string
		for _, g := range strings.Split(groupList, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
		out[email] = groups
	}
	return out, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
