package entity

// User is the aggregate root for the journal's account domain.
// Password holds a bcrypt hash, never the plain text.
type User struct {
	ID       int64
	Username string
	Name     string
	Email    string
	Password string
}
