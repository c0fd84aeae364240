// Package ingest talks to the external receipt-parsing service: it
// uploads a receipt photo and receives back the food items printed on
// it. The ledger is only touched by the caller, and only after a
// successful response, so a failed upload never changes state.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkhusainov/checksplit/internal/models"
)

const (
	// DefaultEndpoint is the production receipt-parsing service.
	DefaultEndpoint = "https://prod-storage-service.alifshop.tj/shurik"

	// DefaultTimeout bounds the upload. The service imposes no contract
	// here, but an unbounded network call would hang the caller forever.
	DefaultTimeout = 15 * time.Second

	formFieldName = "receipt_image"
	formFileName  = "receipt_image.jpg"
)

// Client parses a receipt photo into food items.
type Client interface {
	ParseReceipt(ctx context.Context, image []byte) ([]models.FoodItem, error)
}

// Error reports a failed parse attempt: either the upload itself or
// decoding the service's response.
type Error struct {
	Op  string // "upload" or "decode"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPClient is a resty-backed implementation of Client.
type HTTPClient struct {
	httpClient *resty.Client
	endpoint   string
}

// NewHTTPClient builds a receipt-parsing client for the given endpoint.
// Empty endpoint or zero timeout fall back to the defaults.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	restyClient := resty.New()
	restyClient.SetTimeout(timeout)

	return &HTTPClient{
		httpClient: restyClient,
		endpoint:   endpoint,
	}
}

// ParseReceipt uploads JPEG bytes as a multipart form with a single
// receipt_image part and decodes the response into food items. Each
// returned item carries a fresh identity; the service's response only
// supplies name, price and optionally quantity, and any extra fields
// are ignored. Transport errors, non-2xx statuses and malformed JSON
// all surface as *Error.
func (c *HTTPClient) ParseReceipt(ctx context.Context, image []byte) ([]models.FoodItem, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetMultipartField(formFieldName, formFileName, "image/jpeg", bytes.NewReader(image)).
		Post(c.endpoint)
	if err != nil {
		return nil, &Error{Op: "upload", Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &Error{Op: "upload", Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	var items []models.FoodItem
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	for i := range items {
		items[i] = items[i].Copy()
	}
	return items, nil
}
