package models

// User is the identity supplied by the external identity provider. The
// service never creates or mutates users.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Name returns the identity used for authorship and for keying the user's
// notification log: the display name, falling back to the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Is reports whether the given author string refers to this user under either
// of its known names. Reply fan-out is skipped when the comment author Is the
// replier.
func (u User) Is(author string) bool {
	return author == u.DisplayName || author == u.Username
}
