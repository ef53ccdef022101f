package domain

import "encoding/json"

// Upload is a farmer's crop image submission. Result is the analysis payload,
// passed through untouched.
type Upload struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	UserPhone string          `json:"user_phone"`
	ImageURL  string          `json:"image_url"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// HasResult reports whether the analysis produced a non-null result.
func (u Upload) HasResult() bool {
	return len(u.Result) > 0 && string(u.Result) != "null"
}
