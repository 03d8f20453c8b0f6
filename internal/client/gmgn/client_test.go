package gmgn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"below minimum", 0, 1},
		{"negative", -5, 1},
		{"at minimum", 1, 1},
		{"in range", 25, 25},
		{"at maximum", 50, 50},
		{"above maximum", 999, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.limit))
		})
	}
}

// newTestClient returns a client pointed at a stub upstream serving the
// given handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestTopPumpingTokens_SendsClampedQueryParams(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"limit":     r.URL.Query().Get("limit"),
			"orderby":   r.URL.Query().Get("orderby"),
			"direction": r.URL.Query().Get("direction"),
			"pump":      r.URL.Query().Get("pump"),
		}
		_, _ = w.Write([]byte(`{"data": {"rank": []}}`))
	})

	records, err := client.TopPumpingTokens(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, map[string]string{
		"limit":     "1",
		"orderby":   "progress",
		"direction": "desc",
		"pump":      "true",
	}, gotQuery)
}

func TestTopPumpingTokens_ReturnsFirstListUnderData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"rank": [{"symbol": "AAA"}, {"symbol": "BBB"}]}}`))
	})

	records, err := client.TopPumpingTokens(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Symbol)
	assert.Equal(t, "AAA", *records[0].Symbol)
	require.NotNil(t, records[1].Symbol)
	assert.Equal(t, "BBB", *records[1].Symbol)
}

func TestTopPumpingTokens_SkipsNonListMembers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"x": "not a list", "y": [{"symbol": "CCC"}]}}`))
	})

	records, err := client.TopPumpingTokens(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Symbol)
	assert.Equal(t, "CCC", *records[0].Symbol)
}

func TestTopPumpingTokens_MalformedShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"data is not an object", `{"data": "not a mapping"}`},
		{"no data key", `{"nope": 1}`},
		{"object with no list", `{"data": {"x": 1, "y": "z"}}`},
		{"top level not an object", `[1, 2, 3]`},
		{"invalid json", `{"data": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			records, err := client.TopPumpingTokens(context.Background(), 10)
			assert.Nil(t, records)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindMalformed, apiErr.Kind)
		})
	}
}

func TestTopPumpingTokens_UpstreamStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	records, err := client.TopPumpingTokens(context.Background(), 10)
	assert.Nil(t, records)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRejected, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestTopPumpingTokens_UpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(WithBaseURL(srv.URL))

	records, err := client.TopPumpingTokens(context.Background(), 10)
	assert.Nil(t, records)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnavailable, apiErr.Kind)
}

func TestTopPumpingTokens_TruncatesToClampedLimit(t *testing.T) {
	// Upstream ignores the limit and responds with five rows anyway.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"rank": [
			{"symbol": "A"}, {"symbol": "B"}, {"symbol": "C"},
			{"symbol": "D"}, {"symbol": "E"}
		]}}`))
	})

	records, err := client.TopPumpingTokens(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", *records[0].Symbol)
	assert.Equal(t, "B", *records[1].Symbol)
}

func TestTopPumpingTokens_SkipsNonObjectEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"rank": ["junk", {"symbol": "DDD"}]}}`))
	})

	records, err := client.TopPumpingTokens(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "DDD", *records[0].Symbol)
}

func TestTokenRecord_LenientFieldDecoding(t *testing.T) {
	var rec TokenRecord
	err := json.Unmarshal([]byte(`{
		"symbol": 123,
		"name": "ok",
		"price": "not a number",
		"usd_market_cap": 42.5,
		"created_timestamp": 1700000000,
		"holder_count": 7,
		"price_change_percent5m": -5.2
	}`), &rec)
	require.NoError(t, err)

	assert.Nil(t, rec.Symbol, "mis-typed field should decode to nil")
	require.NotNil(t, rec.Name)
	assert.Equal(t, "ok", *rec.Name)
	assert.Nil(t, rec.Price, "mis-typed field should decode to nil")
	require.NotNil(t, rec.UsdMarketCap)
	assert.Equal(t, 42.5, *rec.UsdMarketCap)
	require.NotNil(t, rec.CreatedTimestamp)
	assert.Equal(t, int64(1700000000), *rec.CreatedTimestamp)
	require.NotNil(t, rec.HolderCount)
	assert.Equal(t, int64(7), *rec.HolderCount)
	require.NotNil(t, rec.PriceChangePercent5m)
	assert.Equal(t, "-5.2", *rec.PriceChangePercent5m)
	assert.Nil(t, rec.LastTradeTimestamp)
	assert.Nil(t, rec.Website)
}

func TestTokenRecord_PriceChangeAsString(t *testing.T) {
	var rec TokenRecord
	err := json.Unmarshal([]byte(`{"price_change_percent5m": "12.75"}`), &rec)
	require.NoError(t, err)
	require.NotNil(t, rec.PriceChangePercent5m)
	assert.Equal(t, "12.75", *rec.PriceChangePercent5m)
}
