package domain

// AdminStatus reconciles the optimistic admin hint carried in a session
// token with the authoritative database check. Confirmed is nil until the
// check has run.
type AdminStatus struct {
	Optimistic bool  `json:"optimistic"`
	Confirmed  *bool `json:"confirmed"`
}

// Resolve merges the two phases: a confirmed value always wins, the
// optimistic hint only bridges the gap before the check resolves.
func (s AdminStatus) Resolve() bool {
	if s.Confirmed != nil {
		return *s.Confirmed
	}

	return s.Optimistic
}
