package gmgn

import (
	"encoding/json"
	"strconv"
)

// TokenRecord is one token entry from the GMGN rank feed. The upstream makes
// no schema promises, so every field is optional: a missing or mis-typed
// field decodes to nil instead of failing the whole record.
type TokenRecord struct {
	Symbol               *string
	Name                 *string
	Price                *float64
	UsdMarketCap         *float64
	CreatedTimestamp     *int64
	LastTradeTimestamp   *int64
	Progress             *float64
	HolderCount          *int64
	Volume1h             *float64
	PriceChangePercent5m *string
	Website              *string
	Twitter              *string
	Telegram             *string
}

// UnmarshalJSON decodes a record field by field. The only hard failure is a
// value that is not a JSON object at all.
func (t *TokenRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Symbol = getString(raw, "symbol")
	t.Name = getString(raw, "name")
	t.Price = getFloat(raw, "price")
	t.UsdMarketCap = getFloat(raw, "usd_market_cap")
	t.CreatedTimestamp = getInt(raw, "created_timestamp")
	t.LastTradeTimestamp = getInt(raw, "last_trade_timestamp")
	t.Progress = getFloat(raw, "progress")
	t.HolderCount = getInt(raw, "holder_count")
	t.Volume1h = getFloat(raw, "volume_1h")
	t.PriceChangePercent5m = getNumberOrString(raw, "price_change_percent5m")
	t.Website = getString(raw, "website")
	t.Twitter = getString(raw, "twitter")
	t.Telegram = getString(raw, "telegram")
	return nil
}

func getString(data map[string]interface{}, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}

func getFloat(data map[string]interface{}, key string) *float64 {
	if v, ok := data[key].(float64); ok {
		return &v
	}
	return nil
}

func getInt(data map[string]interface{}, key string) *int64 {
	if v, ok := data[key].(float64); ok {
		n := int64(v)
		return &n
	}
	return nil
}

// getNumberOrString keeps the value in display form: upstream sends the
// 5-minute change as either a number or a string.
func getNumberOrString(data map[string]interface{}, key string) *string {
	switch v := data[key].(type) {
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		return &s
	default:
		return nil
	}
}
