package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

// ErrIdentityRejected is returned when the identity provider's token does
// not verify: bad signature, wrong audience, expired, or missing subject.
var ErrIdentityRejected = errors.New("identity token rejected")

// ExternalIdentity is the subset of identity-provider claims the app uses.
type ExternalIdentity struct {
	Subject string
	Name    string
	Email   string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*ExternalIdentity, error)
}

// GoogleVerifier checks Google-issued ID tokens against Google's published
// signing keys. Google uses two spellings of its issuer, so both are accepted.
type GoogleVerifier struct {
	verifiers []*rp.IDTokenVerifier
}

func NewGoogleVerifier(issuer, clientID, jwksURL string, client *http.Client) *GoogleVerifier {
	if client == nil {
		client = http.DefaultClient
	}

	keySet := rp.NewRemoteKeySet(client, jwksURL)

	issuers := []string{issuer}
	if bare := strings.TrimPrefix(issuer, "https://"); bare != issuer {
		issuers = append(issuers, bare)
	}

	verifiers := make([]*rp.IDTokenVerifier, 0, len(issuers))
	for _, iss := range issuers {
		verifiers = append(verifiers, rp.NewIDTokenVerifier(iss, clientID, keySet))
	}

	return &GoogleVerifier{verifiers: verifiers}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*ExternalIdentity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrIdentityRejected)
	}

	var lastErr error

	for _, verifier := range g.verifiers {
		claims, err := rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, token, verifier)

		if err != nil {
			lastErr = err
			continue
		}

		return identityFromClaims(claims)
	}

	return nil, fmt.Errorf("%w: %v", ErrIdentityRejected, lastErr)
}

func identityFromClaims(claims *oidc.IDTokenClaims) (*ExternalIdentity, error) {
	if claims == nil || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrIdentityRejected)
	}

	return &ExternalIdentity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}, nil
}
