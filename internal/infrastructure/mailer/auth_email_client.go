package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AuthEmailClient invokes the hosted auth-email function. Callers treat every
// send as best-effort; a failed invoke must never fail the primary flow.
type AuthEmailClient struct {
	functionURL string
	httpClient  *http.Client
}

func NewAuthEmailClient(functionURL string) *AuthEmailClient {
	return &AuthEmailClient{
		functionURL: functionURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type authEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"` // "registration" or "login"
}

func (c *AuthEmailClient) SendRegistrationEmail(ctx context.Context, email, name string) error {
	return c.invoke(ctx, authEmailPayload{Email: email, Name: name, Type: "registration"})
}

func (c *AuthEmailClient) SendLoginEmail(ctx context.Context, email, name string) error {
	return c.invoke(ctx, authEmailPayload{Email: email, Name: name, Type: "login"})
}

func (c *AuthEmailClient) invoke(ctx context.Context, payload authEmailPayload) error {
	if c.functionURL == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.functionURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("auth email function returned status %d", resp.StatusCode)
	}

	return nil
}
