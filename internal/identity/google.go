// Package identity verifies externally issued identity tokens.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrVerificationFailed = errors.New("identity token verification failed")

// Claims is the verified identity returned by a Verifier.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier maps an externally issued identity token to verified claims, or
// rejects it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

const (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

	// verifyTimeout bounds the round-trip to Google so an unresponsive
	// provider cannot hang the login request.
	verifyTimeout = 10 * time.Second
)

// GoogleVerifier verifies Google ID tokens against the tokeninfo endpoint.
// The endpoint checks the signature and expiry; the audience is checked here
// against the configured OAuth client ID.
type GoogleVerifier struct {
	clientID string
	endpoint string
	client   *http.Client
}

// NewGoogleVerifier creates a GoogleVerifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		endpoint: googleTokenInfoURL,
		client:   &http.Client{Timeout: verifyTimeout},
	}
}

// tokenInfo is the subset of the tokeninfo response this service consumes.
type tokenInfo struct {
	Aud     string `json:"aud"`
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify submits the ID token to Google and returns the verified claims.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	// Google answers non-200 for bad signatures, malformed and expired tokens.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decoding tokeninfo response: %v", ErrVerificationFailed, err)
	}

	if info.Aud != v.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", ErrVerificationFailed)
	}
	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: incomplete claims", ErrVerificationFailed)
	}

	return &Claims{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
