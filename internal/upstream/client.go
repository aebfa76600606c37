package upstream

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

	"github.com/google/uuid"
)

// Client is the typed wrapper around the remote order service. It owns no
// business logic: it shapes requests, attaches the bearer token, and unwraps
// the {data: ...} envelope. A missing data field decodes to the zero value,
// never an error.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Error carries the upstream HTTP status and the server-provided detail
// message when one was present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &Error{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		// absent data means empty, not error
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// --- customer ---

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDraft(ctx context.Context) ([]DraftSuggestion, error) {
	var out []DraftSuggestion
	if err := c.do(ctx, http.MethodGet, "/draft", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartWorkingCopy(ctx context.Context) (*WorkingCopy, error) {
	var wc WorkingCopy
	if err := c.do(ctx, http.MethodPost, "/working-copy/start", nil, &wc); err != nil {
		return nil, err
	}
	return &wc, nil
}

// ReplaceWorkingCopyItems persists the full item list; the server treats the
// body as a wholesale replacement, last writer wins.
func (c *Client) ReplaceWorkingCopyItems(ctx context.Context, id int64, items []ItemPatch) (*WorkingCopy, error) {
	var wc WorkingCopy
	path := fmt.Sprintf("/working-copy/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, items, &wc); err != nil {
		return nil, err
	}
	return &wc, nil
}

func (c *Client) ReplaceWorkingCopyQuantities(ctx context.Context, id int64, items []QuantityPatch) (*WorkingCopy, error) {
	var wc WorkingCopy
	path := fmt.Sprintf("/working-copy/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, items, &wc); err != nil {
		return nil, err
	}
	return &wc, nil
}

func (c *Client) AddWorkingCopyItem(ctx context.Context, id, productID int64, qty int) (*WorkingCopy, error) {
	var wc WorkingCopy
	path := fmt.Sprintf("/working-copy/%d/items", id)
	body := map[string]any{"product_id": productID, "user_qty": qty}
	if err := c.do(ctx, http.MethodPost, path, body, &wc); err != nil {
		return nil, err
	}
	return &wc, nil
}

func (c *Client) SubmitWorkingCopy(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/working-copy/%d/submit", id), nil, nil)
}

func (c *Client) PendingDeliveries(ctx context.Context) ([]Delivery, error) {
	var out []Delivery
	if err := c.do(ctx, http.MethodGet, "/deliveries/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AcceptDelivery(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/deliveries/%d/accept", id), nil, nil)
}

func (c *Client) RejectDelivery(ctx context.Context, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/deliveries/%d/reject", id), body, nil)
}

func (c *Client) DeliveryHistory(ctx context.Context) ([]Delivery, error) {
	var out []Delivery
	if err := c.do(ctx, http.MethodGet, "/deliveries/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeclareStock(ctx context.Context, items []StockDeclarationItem) (*StockDeclarationResult, error) {
	var res StockDeclarationResult
	body := map[string]any{"items": items}
	if err := c.do(ctx, http.MethodPost, "/stock-declarations", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) PendingVariance(ctx context.Context) ([]VarianceEvent, error) {
	var out []VarianceEvent
	if err := c.do(ctx, http.MethodGet, "/variance/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApplyVarianceReasonBulk(ctx context.Context, eventIDs []int64, reasonCode, reasonNote string) error {
	body := map[string]any{
		"event_ids":   eventIDs,
		"reason_code": reasonCode,
		"reason_note": reasonNote,
	}
	return c.do(ctx, http.MethodPost, "/variance/apply-reason-bulk", body, nil)
}

func (c *Client) DismissVarianceBulk(ctx context.Context, eventIDs []int64) error {
	body := map[string]any{"event_ids": eventIDs}
	return c.do(ctx, http.MethodPost, "/variance/dismiss-bulk", body, nil)
}

func (c *Client) DailyConsumption(ctx context.Context, dateFrom string) ([]DailyConsumption, error) {
	path := "/daily-consumption"
	if dateFrom != "" {
		path += "?date_from=" + url.QueryEscape(dateFrom)
	}
	var out []DailyConsumption
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConsumptionSummary(ctx context.Context) ([]ConsumptionSummaryItem, error) {
	var out []ConsumptionSummaryItem
	if err := c.do(ctx, http.MethodGet, "/daily-consumption/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- sales ---

func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDelivery(ctx context.Context, customerID int64, items []DeliveryItem) (*Delivery, error) {
	var d Delivery
	body := map[string]any{"customer_id": customerID, "items": items}
	if err := c.do(ctx, http.MethodPost, "/deliveries", body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) Deliveries(ctx context.Context) ([]Delivery, error) {
	var out []Delivery
	if err := c.do(ctx, http.MethodGet, "/deliveries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/approve", id), nil, nil)
}

func (c *Client) RequestOrderEdit(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/request-edit", id), nil, nil)
}

func (c *Client) WarehouseDraft(ctx context.Context) (*WarehouseDraft, error) {
	var wd WarehouseDraft
	if err := c.do(ctx, http.MethodGet, "/warehouse-draft", nil, &wd); err != nil {
		return nil, err
	}
	return &wd, nil
}

func (c *Client) SubmitWarehouseDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/warehouse-draft/submit", nil, nil)
}

// --- admin ---

func (c *Client) HealthSummary(ctx context.Context) (*HealthSummary, error) {
	var hs HealthSummary
	if err := c.do(ctx, http.MethodGet, "/health/summary", nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

func (c *Client) Variance(ctx context.Context) ([]VarianceEvent, error) {
	var out []VarianceEvent
	if err := c.do(ctx, http.MethodGet, "/variance", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WarehouseOrders(ctx context.Context) ([]WarehouseOrder, error) {
	var out []WarehouseOrder
	if err := c.do(ctx, http.MethodGet, "/warehouse-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProcessWarehouseOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/warehouse-orders/%d/process", id), nil, nil)
}
