package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jobboard/jobboard-ui/config"
	"github.com/jobboard/jobboard-ui/internal/adapters/authroles"
	"github.com/jobboard/jobboard-ui/internal/adapters/directory"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// IdentityConfig contains configuration for login identity resolution.
type IdentityConfig struct {
	Auth   config.AuthConfig
	Logger *slog.Logger
}

// Identity bundles the login ports.
type Identity struct {
	Provider ports.IdentityProvider
	Roles    ports.RoleMapper
}

// BuildIdentity builds the directory provider and role mapper. An admin
// expression, when configured, takes precedence over the admin group.
func BuildIdentity(cfg IdentityConfig) (Identity, error) {
	accounts, err := directory.ParseAccounts(cfg.Auth.Accounts)
	if err != nil {
		return Identity{}, fmt.Errorf("parse AUTH_ACCOUNTS: %w", err)
	}

	provider := directory.NewProvider(directory.Config{
		Accounts:      accounts,
		DefaultGroups: cfg.Auth.DefaultGroups,
	})

	static := authroles.StaticRoleMapper{
		AdminGroup:  cfg.Auth.AdminGroup,
		MemberGroup: cfg.Auth.MemberGroup,
	}

	if cfg.Auth.AdminExpression == "" {
		return Identity{Provider: provider, Roles: static}, nil
	}

	expr, err := authroles.NewExpressionRoleMapper(authroles.ExpressionOptions{
		Expression: cfg.Auth.AdminExpression,
		Fallback:   static,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return Identity{}, fmt.Errorf("compile AUTH_ADMIN_EXPRESSION: %w", err)
	}
	return Identity{Provider: provider, Roles: expr}, nil
}
