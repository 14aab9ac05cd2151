package models

// User is the public view of an account. Password hashes never leave the
// auth package.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
