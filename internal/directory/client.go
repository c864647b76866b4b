package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pharmesol/outreach-ai/pkg/logging"
)

// Client fetches pharmacy records from the remote directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pharmacyPayload mirrors the wire format. Pointer fields distinguish
// absent required values from zero values.
type pharmacyPayload struct {
	ID            *int           `json:"id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Prescriptions []Prescription `json:"prescriptions"`
}

// FetchAll performs a single GET against the directory service and returns
// every pharmacy record. Any network, decode, or per-record validation
// failure fails the whole fetch with a FetchError. No retries.
func (c *Client) FetchAll(ctx context.Context) ([]Pharmacy, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)}
	}

	var payloads []pharmacyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode response: %w", err)}
	}

	pharmacies := make([]Pharmacy, 0, len(payloads))
	for i, p := range payloads {
		pharmacy, err := p.validate()
		if err != nil {
			return nil, &FetchError{Err: fmt.Errorf("record %d: %w", i, err)}
		}
		pharmacies = append(pharmacies, pharmacy)
	}

	c.logger.Info("fetched pharmacy directory", "count", len(pharmacies))
	return pharmacies, nil
}

func (p pharmacyPayload) validate() (Pharmacy, error) {
	switch {
	case p.ID == nil:
		return Pharmacy{}, fmt.Errorf("missing required field id")
	case p.Name == "":
		return Pharmacy{}, fmt.Errorf("missing required field name")
	case p.Phone == "":
		return Pharmacy{}, fmt.Errorf("missing required field phone")
	case p.City == "":
		return Pharmacy{}, fmt.Errorf("missing required field city")
	case p.State == "":
		return Pharmacy{}, fmt.Errorf("missing required field state")
	}
	for _, rx := range p.Prescriptions {
		if rx.Count < 0 {
			return Pharmacy{}, fmt.Errorf("prescription %s has negative count %d", rx.Drug, rx.Count)
		}
	}
	return Pharmacy{
		ID:            *p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		City:          p.City,
		State:         p.State,
		Prescriptions: p.Prescriptions,
	}, nil
}
