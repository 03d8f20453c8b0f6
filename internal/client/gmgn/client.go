package gmgn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	httpClient "pumprank-api/internal/client/http"
	"pumprank-api/internal/logger"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://gmgn.ai"
	defaultTimeout = 10 * time.Second

	rankPath = "/defi/quotation/v1/rank/sol/pump"

	// MinLimit and MaxLimit bound the number of tokens a single rank
	// request may ask for. Out-of-range values are substituted, not
	// rejected.
	MinLimit = 1
	MaxLimit = 50
)

// ErrorKind classifies an upstream failure.
type ErrorKind int

const (
	// KindUnavailable covers transport failures: timeout, DNS, connect.
	KindUnavailable ErrorKind = iota
	// KindRejected covers non-2xx upstream statuses.
	KindRejected
	// KindMalformed covers bodies that are not JSON or contain no token list.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a classified GMGN API failure. Diagnostic detail stays in the
// logs; callers only need the Kind.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gmgn api %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gmgn api %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client manages communication with the GMGN quotation API.
type Client struct {
	httpClient *httpClient.HTTPClient
	baseURL    string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
}

// WithBaseURL overrides the GMGN base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// NewClient creates a new GMGN API client. The rank endpoint is public, so
// there is no API key to configure. Each call is a single attempt: retries
// stay disabled on the underlying client.
func NewClient(opts ...Option) *Client {
	o := &options{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	hc := httpClient.NewHTTPClient(
		httpClient.WithBaseURL(o.baseURL),
		httpClient.WithTimeout(o.timeout),
		httpClient.WithMiddleware(httpClient.LoggingMiddleware()),
	)
	return &Client{
		httpClient: hc,
		baseURL:    o.baseURL,
	}
}

// TopPumpingTokens fetches the ranked pump-token list, ordered by bonding
// progress descending. limit is clamped into [MinLimit, MaxLimit]; the
// result never exceeds the clamped limit.
func (c *Client) TopPumpingTokens(ctx context.Context, limit int) ([]TokenRecord, error) {
	limit = clampLimit(limit)

	resp, err := c.httpClient.Get(ctx, rankPath,
		httpClient.WithQueryParam("limit", strconv.Itoa(limit)),
		httpClient.WithQueryParam("orderby", "progress"),
		httpClient.WithQueryParam("direction", "desc"),
		httpClient.WithQueryParam("pump", "true"),
	)
	if err != nil {
		if httpErr, ok := err.(*httpClient.HTTPError); ok {
			if resp != nil {
				resp.Body.Close()
			}
			logger.Warn("gmgn rejected rank request",
				zap.Int("status", httpErr.StatusCode),
				zap.Int("limit", limit))
			return nil, &Error{Kind: KindRejected, StatusCode: httpErr.StatusCode, Err: err}
		}
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Err: errors.Wrap(err, "read gmgn response body")}
	}

	records, err := extractTokenList(body)
	if err != nil {
		return nil, err
	}

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// extractTokenList resolves the response shape. GMGN wraps the ranking in a
// "data" object whose member names have shifted over time, so instead of a
// strict schema this scans data's members in document order and takes the
// first whose value is an array.
func extractTokenList(body []byte) ([]TokenRecord, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("gmgn response is not a JSON object", zap.Error(err))
		return nil, &Error{Kind: KindMalformed, Err: errors.Wrap(err, "decode gmgn response")}
	}

	data, ok := envelope["data"]
	if !ok {
		dumpPayload(body)
		return nil, &Error{Kind: KindMalformed, Err: errors.New(`gmgn response has no "data" key`)}
	}

	list, ok := firstListMember(data)
	if !ok {
		dumpPayload(body)
		return nil, &Error{Kind: KindMalformed, Err: errors.New(`no token list found under "data"`)}
	}

	records := make([]TokenRecord, 0, len(list))
	for _, raw := range list {
		var rec TokenRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("skipping non-object token entry", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// firstListMember scans a JSON object's members in document order and
// returns the first array value. Go maps do not preserve member order, so
// this walks the raw bytes with a json.Decoder instead.
func firstListMember(data []byte) ([]json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		trimmed := bytes.TrimLeft(value, " \t\r\n")
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []json.RawMessage
			if err := json.Unmarshal(value, &list); err != nil {
				return nil, false
			}
			return list, true
		}
	}
	return nil, false
}

// dumpPayload logs the full decoded payload at debug level when the shape
// resolution gives up, so unexpected upstream drift can be diagnosed.
func dumpPayload(body []byte) {
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return
	}
	logger.Debug("full gmgn response", zap.String("payload", spew.Sdump(parsed)))
}
