package auth

// Scopes requested on the GitHub authorize page.
var Scopes = []string{"repo", "delete_repo", "read:user"}

type AuthorizeInput struct {
	RedirectURI string
}

type AuthorizeOutput struct {
	URL   string
	State string
}

type ExchangeInput struct {
	Code  string
	State string
}

type ExchangeOutput struct {
	AccessToken string
	TokenType   string
	Scope       string
}
