package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Client exposes the authorization-code flow against Google.
type Client interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*model.FederatedProfile, error)
}

// OAuthClient implements Client via the standard OAuth2 code exchange
// followed by a userinfo fetch.
type OAuthClient struct {
	config      *oauth2.Config
	userinfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// userinfo mirrors the JSON payload of the Google userinfo endpoint.
type userinfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewOAuthClient creates a Google client with default timeout.
func NewOAuthClient(clientID, clientSecret, callbackURL string, logger *slog.Logger) (*OAuthClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google client credentials are empty")
	}
	return &OAuthClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     googleoauth.Endpoint,
		},
		userinfoURL: userinfoURL,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// AuthCodeURL builds the provider authorization URL for the given state.
func (c *OAuthClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for the user's federated profile.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*model.FederatedProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		c.logger.Error("code exchange failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrFederatedAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrFederatedAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("userinfo request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: userinfo status %s", domainErrors.ErrFederatedAuth, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data userinfo
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode userinfo: %v", domainErrors.ErrFederatedAuth, err)
	}
	if data.Sub == "" {
		return nil, fmt.Errorf("%w: userinfo without subject", domainErrors.ErrFederatedAuth)
	}

	return &model.FederatedProfile{
		SubjectID: data.Sub,
		Email:     data.Email,
		Name:      data.Name,
		Picture:   data.Picture,
	}, nil
}
