package model

// User is the identity record the backend issues at login. The token that
// accompanies it is opaque and kept by the session store, not here.
type User struct {
	Nama     string `json:"nama"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}
