package domain

import "time"

// User is a credential record owned by the credential store. This service
// reads it and rewrites CurrentToken; it never creates users.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	RoleID         int       `json:"role_id"`
	CurrentToken   string    `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Roles returns the role set derived from the record's role identifier.
func (u *User) Roles() RoleSet {
	return RolesFor(u.RoleID)
}

// HoldsToken reports whether token is the record's single active token.
// An empty token never matches.
func (u *User) HoldsToken(token string) bool {
	return token != "" && u.CurrentToken == token
}
