package adapthttp

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the optional single-sign-on configuration. The zero
// value disables SSO entirely.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// LoadOIDC builds an OIDCConfig from provider settings. Empty issuer or
// client id leaves SSO disabled without error.
func LoadOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	if issuer == "" || clientID == "" {
		return OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, err
	}

	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
