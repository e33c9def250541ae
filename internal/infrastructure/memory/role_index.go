package memory

import (
	"fmt"
	"sync"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

// RoleIndex links holders of one role to the projects they own. Lists keep
// insertion order and may contain the same project more than once.
type RoleIndex struct {
	role    domain.Role
	mu      sync.RWMutex
	entries map[string][]int64
}

func NewRoleIndex(role domain.Role) *RoleIndex {
	return &RoleIndex{role: role, entries: make(map[string][]int64)}
}

func (x *RoleIndex) Role() domain.Role {
	return x.role
}

// CreateEntry resets holderID to an empty list.
func (x *RoleIndex) CreateEntry(holderID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[holderID] = []int64{}
}

// UpsertProject appends projectID, creating the holder's entry if needed.
func (x *RoleIndex) UpsertProject(holderID string, projectID int64) error {
	if holderID == "" {
		return fmt.Errorf("%w: %s id cannot be empty", domain.ErrInvalidArgument, x.role)
	}
	if projectID <= 0 {
		return fmt.Errorf("%w: project id must be positive", domain.ErrInvalidArgument)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[holderID] = append(x.entries[holderID], projectID)
	return nil
}

// RemoveProject removes every occurrence of projectID from the holder's list.
func (x *RoleIndex) RemoveProject(holderID string, projectID int64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	ids, ok := x.entries[holderID]
	if !ok {
		return
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != projectID {
			kept = append(kept, id)
		}
	}
	x.entries[holderID] = kept
}

// ProjectsOf returns a copy of the holder's list; empty for unknown holders.
func (x *RoleIndex) ProjectsOf(holderID string) []int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ids := x.entries[holderID]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func (x *RoleIndex) Exists(holderID string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.entries[holderID]
	return ok
}

// Count returns the number of holders with an entry.
func (x *RoleIndex) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

func (x *RoleIndex) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = make(map[string][]int64)
}
