package ports

import "github.com/builderportfolio/portfolio-system/internal/core/domain"

// RoleIndex maps a holder (builder or manager ID) to the ordered list of
// project IDs it owns.
type RoleIndex interface {
	Role() domain.Role

	// CreateEntry starts an empty list for holderID, discarding any links
	// the holder already had.
	CreateEntry(holderID string)

	// UpsertProject appends projectID to holderID's list, creating the
	// entry first when the holder has none.
	UpsertProject(holderID string, projectID int64) error

	// RemoveProject drops every occurrence of projectID from holderID's
	// list. Unknown holders and links are ignored.
	RemoveProject(holderID string, projectID int64)

	ProjectsOf(holderID string) []int64
	Exists(holderID string) bool
	Clear()
}
