package authroles

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
)

// ErrEmptyExpression is returned when no admin expression is configured.
var ErrEmptyExpression = errors.New("admin expression is required")

// ExpressionRoleMapper grants admin when a JMESPath expression evaluated
// against the identity is truthy. Everything else falls through to Fallback.
//
// The expression sees a document shaped like:
//
//	{"user_id": "...", "email": "...", "name": "...", "groups": ["..."]}
type ExpressionRoleMapper struct {
	expr     string
	fallback ports.RoleMapper
	logger   *slog.Logger
}

// ExpressionOptions groups dependencies for NewExpressionRoleMapper.
type ExpressionOptions struct {
	Expression string
	Fallback   ports.RoleMapper // defaults to StaticRoleMapper{}
	Logger     *slog.Logger
}

// NewExpressionRoleMapper validates the expression and builds a mapper.
func NewExpressionRoleMapper(opts ExpressionOptions) (*ExpressionRoleMapper, error) {
	expr := strings.TrimSpace(opts.Expression)
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile admin expression: %w", err)
	}

	fallback := opts.Fallback
	if fallback == nil {
		fallback = StaticRoleMapper{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExpressionRoleMapper{
		expr:     expr,
		fallback: fallback,
		logger:   logger.With("component", "expression_role_mapper"),
	}, nil
}

// Map evaluates the admin expression. Evaluation errors are logged and
// treated as not-admin.
func (m *ExpressionRoleMapper) Map(id ports.Identity) view.Role {
	result, err := jmespath.Search(m.expr, identityDocument(id))
	if err != nil {
		m.logger.Warn("admin expression evaluation failed", "error", err)
	} else if truthy(result) {
		return view.RoleAdmin
	}

	role := m.fallback.Map(id)
	if role == view.RoleAdmin {
		// The expression is authoritative for admin.
		return view.RoleMember
	}
	return role
}

func identityDocument(id ports.Identity) map[string]any {
	groups := make([]any, 0, len(id.Groups))
	for _, g := range id.Groups {
		groups = append(groups, g)
	}
	return map[string]any{
		"user_id": id.UserID,
		"email":   id.Email,
		"name":    id.Name,
		"groups":  groups,
	}
}

// truthy follows JMESPath truthiness: false, null and empty values are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
