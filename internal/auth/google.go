package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokeninfoURL is Google's ID-token introspection endpoint.
const TokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// UserInfo is what Google attests about the signed-in user.
type UserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// GoogleVerifier validates Google Sign-In credentials. The audience check
// rejects tokens minted for some other application.
type GoogleVerifier struct {
	endpoint string
	clientID string
	hc       *http.Client
}

func NewGoogleVerifier(endpoint, clientID string) *GoogleVerifier {
	if endpoint == "" {
		endpoint = TokeninfoURL
	}
	return &GoogleVerifier{
		endpoint: endpoint,
		clientID: clientID,
		hc:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleVerifier) Verify(ctx context.Context, credential string) (UserInfo, error) {
	u := fmt.Sprintf("%s?id_token=%s", g.endpoint, url.QueryEscape(credential))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return UserInfo{}, err
	}
	resp, err := g.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return UserInfo{}, ctx.Err()
		}
		return UserInfo{}, ErrInvalidCredential
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, ErrInvalidCredential
	}

	var data struct {
		Aud     string `json:"aud"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return UserInfo{}, ErrInvalidCredential
	}
	if data.Aud != g.clientID {
		return UserInfo{}, ErrInvalidCredential
	}
	return UserInfo{Email: data.Email, Name: data.Name, Picture: data.Picture}, nil
}
