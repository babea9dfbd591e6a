package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/prometheus"
)

// BasePath is the URL prefix of every platform-admin collection
const BasePath = "/platform-admin"

// uuidPattern matches the canonical UUID text form, case-insensitive
var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// TokenProvider supplies the current bearer token. An empty string means the
// session is unauthenticated; no request is issued then. Session lifecycle is
// owned by the caller, never by this package.
type TokenProvider interface {
	Token() string
}

// StaticToken is a TokenProvider around a fixed token string
type StaticToken string

// Token returns the wrapped token
func (t StaticToken) Token() string { return string(t) }

// Client is the transport layer shared by the per-collection clients. It owns
// URL construction, bearer header injection and error-shape normalization.
// No retries, no caching.
type Client struct {
	BaseURL    string
	Tokens     TokenProvider
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new platform-admin API client
func NewClient(baseURL string, tokens TokenProvider, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// Tenants returns the client for the tenant collection
func (c *Client) Tenants() *TenantClient { return &TenantClient{c: c} }

// Roles returns the client for the role collection
func (c *Client) Roles() *RoleClient { return &RoleClient{c: c} }

// Users returns the client for the user collection
func (c *Client) Users() *UserClient { return &UserClient{c: c} }

// doJSON performs one authenticated request against a collection path and
// decodes the response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, collection, method, path string, query url.Values, body interface{}, out interface{}) error {
	token := c.Tokens.Token()
	if token == "" {
		c.Logger.Error("No bearer token available",
			zap.String("method", method),
			zap.String("path", path))
		prometheus.RecordClientRequest(collection, method, "rejected")
		return ErrUnauthenticated
	}

	u := fmt.Sprintf("%s%s%s", c.BaseURL, BasePath, path)
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.Logger.Error("Failed to encode request body", zap.Error(err))
			prometheus.RecordClientRequest(collection, method, "rejected")
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		c.Logger.Error("Failed to create request", zap.Error(err))
		prometheus.RecordClientRequest(collection, method, "error")
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		prometheus.RecordClientRequest(collection, method, "error")
		return &RequestError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("Failed to read response body", zap.Error(err))
		prometheus.RecordClientRequest(collection, method, "error")
		return &RequestError{StatusCode: resp.StatusCode, Message: "failed to read response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		prometheus.RecordClientRequest(collection, method, "error")
		return c.normalizeError(method, path, resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.Logger.Error("Failed to parse response",
				zap.Int("status", resp.StatusCode),
				zap.Error(err))
			prometheus.RecordClientRequest(collection, method, "error")
			return &RequestError{StatusCode: resp.StatusCode, Message: "failed to parse response"}
		}
	}

	prometheus.RecordClientRequest(collection, method, "success")
	return nil
}

// normalizeError turns a non-success response into a RequestError, parsing
// the structured error body and falling back to a generic message.
func (c *Client) normalizeError(method, path string, status int, body []byte) error {
	var errorResp struct {
		Message string `json:"message"`
	}
	message := "request failed"
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Message != "" {
		message = errorResp.Message
	}

	c.Logger.Error("Request returned error status",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("message", message))

	return &RequestError{StatusCode: status, Message: message}
}

// ValidateUUID rejects identifiers that do not have the canonical UUID shape
func ValidateUUID(field, value string) error {
	if value == "" {
		return &ArgumentError{Message: field + " is required"}
	}
	if !uuidPattern.MatchString(value) {
		return &ArgumentError{Message: fmt.Sprintf("invalid %s: %q is not a valid UUID", field, value)}
	}
	return nil
}
