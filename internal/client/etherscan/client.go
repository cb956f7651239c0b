package etherscan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/tonindexer/gasused/internal/core"
)

const (
	DefaultBaseURL = "https://api.etherscan.io/api"
	DefaultTimeout = 30 * time.Second

	// explorer answers with status "0" and this message after the last page
	noTransactionsMessage = "No transactions found"

	maxErrorBody = 512
)

// HTTPError is returned when the explorer responds with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	Path       string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s failed with status %s: %s", e.Path, e.Status, e.Body)
}

// APIError is a logical error reported inside a successful HTTP response,
// e.g. an invalid API key or a rate limit notice.
type APIError struct {
	Message string
	Result  string
}

func (e *APIError) Error() string {
	if e.Result == "" {
		return fmt.Sprintf("explorer api error: %s", e.Message)
	}
	return fmt.Sprintf("explorer api error: %s: %s", e.Message, e.Result)
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Client talks to an Etherscan compatible account API.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

func (c *Client) txListQuery(req *core.TransactionPageReq) url.Values {
	sort := req.Sort
	if sort == "" {
		sort = core.SortDesc
	}

	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", req.Address)
	q.Set("apikey", c.apiKey)
	q.Set("sort", string(sort))
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("offset", strconv.Itoa(req.PageSize))
	return q
}

// AccountTransactions returns one page of normal transactions of the address.
// An empty slice means there are no transactions on this page.
func (c *Client) AccountTransactions(ctx context.Context, req *core.TransactionPageReq) ([]*core.Transaction, error) {
	var res response

	if err := c.get(ctx, c.txListQuery(req), &res); err != nil {
		return nil, err
	}

	if res.Status == "0" {
		if strings.HasPrefix(res.Message, noTransactionsMessage) {
			return []*core.Transaction{}, nil
		}
		return nil, &APIError{Message: res.Message, Result: rawString(res.Result)}
	}

	ret := []*core.Transaction{}
	if len(res.Result) == 0 || string(res.Result) == "null" {
		return ret, nil
	}
	if err := json.Unmarshal(res.Result, &ret); err != nil {
		return nil, errors.Wrapf(err, "decode txlist result (page = %d)", req.Page)
	}

	return ret, nil
}

func (c *Client) get(ctx context.Context, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		// the request url carries the api key
		var uErr *url.Error
		if errors.As(err, &uErr) {
			err = uErr.Err
		}
		return errors.Wrapf(err, "GET %s", req.URL.Path)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Path:       req.URL.Path,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}

	return nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
