package domain

// Identity is the authenticated admin profile returned by the backend.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	AccessToken string   `json:"access_token"`
	User        Identity `json:"user"`
}

// Snapshot is a read-only view of the session. User is non-nil exactly when
// Authenticated is true.
type Snapshot struct {
	User          *Identity `json:"user"`
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
}

// AdminID returns the identity ID, or "" when signed out.
func (s Snapshot) AdminID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
