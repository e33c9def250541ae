package domain

// Scope names an independent identifier sequence.
type Scope int

const (
	ScopeBuilderUser Scope = iota
	ScopeManagerUser
	ScopeProject
	ScopeClient

	NumScopes = int(ScopeClient) + 1
)

func (s Scope) String() string {
	switch s {
	case ScopeBuilderUser:
		return "builder_user"
	case ScopeManagerUser:
		return "manager_user"
	case ScopeProject:
		return "project"
	case ScopeClient:
		return "client"
	default:
		return "unknown"
	}
}
