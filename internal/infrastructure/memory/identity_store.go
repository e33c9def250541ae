package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

// IdentityStore keeps one counter per scope.
type IdentityStore struct {
	counters [domain.NumScopes]atomic.Int64
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{}
}

// NextID returns the next identifier for scope, starting at 1.
func (s *IdentityStore) NextID(scope domain.Scope) int64 {
	if scope < 0 || int(scope) >= domain.NumScopes {
		panic(fmt.Sprintf("identity: unknown scope %d", scope))
	}
	return s.counters[scope].Add(1)
}
