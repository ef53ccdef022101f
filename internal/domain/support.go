package domain

// SupportCallResolved is the status of a closed call.
const SupportCallResolved = "resolved"

// SupportCall is a farmer's request for a call back.
type SupportCall struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserPhone  string `json:"user_phone"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to,omitempty"`
	CreatedAt  string `json:"created_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Assignable reports whether nobody has picked the call up yet.
func (c SupportCall) Assignable() bool { return c.AssignedTo == "" }

// Resolvable reports whether the call is still open.
func (c SupportCall) Resolvable() bool { return c.Status != SupportCallResolved }
