package auth

import "time"

// User is an account that can edit the campaign map. Accounts are created
// on first login, keyed by the identity provider's subject id.
type User struct {
	ID          string     `json:"id"`
	Provider    string     `json:"provider"`
	Subject     string     `json:"-"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Identity is the normalized user info returned by a login provider.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}
