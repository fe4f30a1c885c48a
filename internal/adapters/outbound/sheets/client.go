package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abraham1744/amuthamorderapp/internal/ports"
)

// Table ranges, addressed by sheet name and column letters.
const (
	rangeProducts  = "Products!A:B"
	rangeCustomers = "Customers!A:A"
	rangeOrders    = "Orders!A:H"
	rangeDetails   = "OrderDetails!A:E"
	rangeHistory   = "OrderHistory!A:I"
)

// Client talks to the values API of one spreadsheet. It implements
// ports.CatalogStore, ports.OrderStore, and ports.HistoryStore.
type Client struct {
	httpClient    *http.Client
	endpoint      string
	spreadsheetID string
	tokens        ports.TokenSource
	now           func() time.Time
	randInt       func(n int) int
}

// Options configures a Client. Endpoint, SpreadsheetID, and Tokens are
// required; the rest default sensibly.
type Options struct {
	Endpoint      string
	SpreadsheetID string
	Tokens        ports.TokenSource
	Timeout       time.Duration

	// Now and RandInt override the clock and the id-suffix source in tests.
	Now     func() time.Time
	RandInt func(n int) int
}

// New creates a Client for one spreadsheet.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint:      strings.TrimRight(opts.Endpoint, "/"),
		spreadsheetID: opts.SpreadsheetID,
		tokens:        opts.Tokens,
		now:           opts.Now,
		randInt:       opts.RandInt,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.randInt == nil {
		c.randInt = rand.Intn
	}
	return c, nil
}

// NewOrderID concatenates a millisecond timestamp with a small random suffix:
// ORD-<millis>-<0..999>. Not globally unique; the create service checks the
// generated id against existing rows before use.
func (c *Client) NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", c.now().UnixMilli(), c.randInt(1000))
}

type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// get fetches a whole table range.
func (c *Client) get(ctx context.Context, tableRange string) ([][]any, error) {
	var vr valueRange
	path := fmt.Sprintf("/v4/spreadsheets/%s/values/%s", c.spreadsheetID, url.PathEscape(tableRange))
	if err := c.do(ctx, http.MethodGet, path, nil, &vr); err != nil {
		return nil, err
	}
	return vr.Values, nil
}

// append adds rows below the last filled row of the range.
func (c *Client) append(ctx context.Context, tableRange string, rows [][]any) error {
	path := fmt.Sprintf("/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.spreadsheetID, url.PathEscape(tableRange))
	return c.do(ctx, http.MethodPost, path, valueRange{Values: rows}, nil)
}

// update overwrites exactly the given range with the given rows.
func (c *Client) update(ctx context.Context, cellRange string, rows [][]any) error {
	path := fmt.Sprintf("/v4/spreadsheets/%s/values/%s?valueInputOption=USER_ENTERED",
		c.spreadsheetID, url.PathEscape(cellRange))
	return c.do(ctx, http.MethodPut, path, valueRange{Values: rows}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			ports.ErrRemote, method, path, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: malformed response: %v", ports.ErrRemote, err)
		}
	}
	return nil
}
