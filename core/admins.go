package core

// AdminFilter answers whether an actor is an excluded administrative
// account. Admin events are dropped before they can create or mutate any
// result, and never mark a team active.
type AdminFilter struct {
	accounts map[string]struct{}
}

// NewAdminFilter builds a filter from a flat list of account ids.
func NewAdminFilter(accounts []string) *AdminFilter {
	set := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		set[a] = struct{}{}
	}
	return &AdminFilter{accounts: set}
}

// IsAdmin reports whether the actor is on the exclusion list.
func (f *AdminFilter) IsAdmin(actor string) bool {
	_, ok := f.accounts[actor]
	return ok
}
