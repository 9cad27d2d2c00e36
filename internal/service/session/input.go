package session

// LoginInput holds the credentials submitted on the login form.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput holds the fields of the sign-up form. None of them is
// validated: registration is a placeholder that always succeeds.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}
