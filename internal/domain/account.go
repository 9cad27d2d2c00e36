package domain

// Account is the external reviews-provider profile a workspace is connected
// to. AccessToken is empty when the connection was made without OAuth;
// RefreshToken is only set when the server completed a code exchange.
type Account struct {
	Email        string
	Name         string
	Picture      string
	AccessToken  string
	RefreshToken string
}

// DisplayName returns Name, falling back to Email.
func (a *Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}
