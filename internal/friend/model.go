package friend

import "time"

// Friend represents a person in the user's friend directory. The ID doubles
// as the PersonID used in splits for registered friends; contacts and
// temporary people never appear here.
type Friend struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
