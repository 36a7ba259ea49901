package domain

// User is a registered account. Email is the identity; all lookups
// compare its normalized form, never the stored string.
type User struct {
	Id         string `json:"id"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Area       string `json:"area"`
	Degree     string `json:"degree"`
	AvatarPath string `json:"avatarPath"`
}

// Public returns the user with the credential stripped, safe to hand
// back to clients.
func (u User) Public() User {
	u.Password = ""
	return u
}
