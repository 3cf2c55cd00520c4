package domain

// User represents a registered account. Email doubles as the login key and
// may change over the account's lifetime; ID never does.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// UserPatch carries a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Name     *string
	Email    *string
	Verified *bool
}
