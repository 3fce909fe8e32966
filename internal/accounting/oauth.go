package accounting

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthConfig describes the accounting platform's OAuth2 endpoints.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

func (c OAuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       []string{"com.intuit.quickbooks.accounting"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// AuthCodeURL builds the user-facing consent URL.
func (c OAuthConfig) AuthCodeURL(state string) string {
	return c.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps an authorization code for a token pair.
func (c OAuthConfig) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth2Config().Exchange(ctx, code)
}

// Refresh performs exactly one refresh-token exchange. The token
// source is built from the refresh token alone, so a single Token()
// call hits the token endpoint once and returns the outcome; there is
// no retry loop.
func (c OAuthConfig) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := c.oauth2Config().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return src.Token()
}
