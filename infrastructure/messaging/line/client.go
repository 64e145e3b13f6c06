// Package line is the adapter for the messaging provider's HTTP API:
// short-term channel access tokens and push messages.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	appErrors "reservation-backend/pkg/errors"
)

// Config holds the provider endpoints. HTTPClient is optional; the default
// is an X-Ray instrumented client.
type Config struct {
	TokenEndpoint string
	PushEndpoint  string
	HTTPClient    *http.Client
}

// Client talks to the messaging provider
type Client struct {
	httpClient    *http.Client
	tokenEndpoint string
	pushEndpoint  string
	logger        *zap.Logger
}

// NewClient creates a provider client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = xray.Client(&http.Client{Timeout: 10 * time.Second})
	}
	return &Client{
		httpClient:    httpClient,
		tokenEndpoint: cfg.TokenEndpoint,
		pushEndpoint:  cfg.PushEndpoint,
		logger:        logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// IssueToken exchanges channel credentials for a short-term access token
func (c *Client) IssueToken(ctx context.Context, channelID, channelSecret string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", channelID)
	form.Set("client_secret", channelSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", appErrors.NewExternalAPIError("failed to build token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErrors.NewExternalAPIError("token request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.NewExternalAPIError("failed to read token response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", appErrors.NewExternalAPIError(
			fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), nil)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", appErrors.NewExternalAPIError("malformed token response", err)
	}
	if parsed.AccessToken == "" {
		return "", appErrors.NewExternalAPIError("token response missing access_token", nil)
	}

	c.logger.Debug("Issued channel access token", zap.String("channelId", channelID))
	return parsed.AccessToken, nil
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushMessage delivers one text message to one recipient
func (c *Client) PushMessage(ctx context.Context, accessToken, userID, messageBody string) error {
	payload, err := json.Marshal(pushRequest{
		To:       userID,
		Messages: []pushMessage{{Type: "text", Text: messageBody}},
	})
	if err != nil {
		return appErrors.NewExternalAPIError("failed to marshal push request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushEndpoint, bytes.NewReader(payload))
	if err != nil {
		return appErrors.NewExternalAPIError("failed to build push request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.NewExternalAPIError("push request failed", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return appErrors.NewExternalAPIError(
			fmt.Sprintf("push endpoint returned status %d", resp.StatusCode), nil)
	}

	c.logger.Debug("Pushed message", zap.String("userId", userID))
	return nil
}
