package model

// User represents a registered user of the system. Password is kept opaque
// by this layer and must be stripped by handlers before it leaves the API.
type User struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Password    string  `json:"password,omitempty"`
	DisplayName string  `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// InsertUser carries the caller-supplied fields for user creation. The store
// assigns the id; username uniqueness is the caller's pre-check.
type InsertUser struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName string  `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// Public returns a copy of the user with the password removed.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	pub := *u
	pub.Password = ""
	return &pub
}
