package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
)

// apiClient calls the exemptledger HTTP API.
type apiClient struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

func newAPIClient(cfg serverConfig, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		userID:  cfg.UserID,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *apiClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if method == http.MethodPost {
			req.Header.Set("Idempotency-Key", ulid.Make().String())
		}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}
	return req, nil
}

// doJSON sends body and decodes a JSON response into out when non-nil.
func (c *apiClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// download fetches a file and returns its name and bytes.
func (c *apiClient) download(ctx context.Context, path string) (string, []byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("reading response: %w", err)
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), data, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var e dto.ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		msg := e.Error
		if e.Message != "" {
			msg += ": " + e.Message
		}
		return &apiError{Status: resp.StatusCode, Message: msg}
	}
	return &apiError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

func attachmentName(disposition string) string {
	_, name, ok := strings.Cut(disposition, "filename=")
	if !ok {
		return ""
	}
	return strings.Trim(name, `"`)
}
