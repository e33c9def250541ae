package ports

import "github.com/builderportfolio/portfolio-system/internal/core/domain"

// IdentityStore hands out identifiers that are unique and strictly
// increasing within a scope. Identifiers are never reused.
type IdentityStore interface {
	NextID(scope domain.Scope) int64
}
