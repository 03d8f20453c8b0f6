// Package report renders token records as human-readable text blocks.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pumprank-api/internal/client/gmgn"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// notAvailable stands in for any field the upstream did not provide.
	notAvailable = "N/A"

	timeLayout = "2006-01-02 15:04:05"
	separator  = "--------------------"
)

// printer renders thousands-separated numbers ("1,234,567.89").
var printer = message.NewPrinter(language.English)

// Format renders one token record as a fixed-order multi-line block. Pure
// function of its input; absent fields render as N/A and absent timestamps
// render as the epoch start in local time.
func Format(t gmgn.TokenRecord) string {
	lines := []string{
		"Symbol: " + stringOrNA(t.Symbol),
		"Name: " + stringOrNA(t.Name),
		"Price: " + priceOrNA(t.Price),
		"Market Cap: " + amountOrNA(t.UsdMarketCap),
		"Created: " + formatTimestamp(t.CreatedTimestamp),
		"Last Trade: " + formatTimestamp(t.LastTradeTimestamp),
		"Progress: " + percentOrNA(t.Progress),
		"Holder Count: " + intOrNA(t.HolderCount),
		"Volume (1h): " + amountOrNA(t.Volume1h),
		"Price Change (5m): " + changeOrNA(t.PriceChangePercent5m),
		"Website: " + stringOrNA(t.Website),
		"Twitter: " + stringOrNA(t.Twitter),
		"Telegram: " + stringOrNA(t.Telegram),
		separator,
	}
	return strings.Join(lines, "\n")
}

func stringOrNA(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}

func priceOrNA(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("$%.8f", *v)
}

func amountOrNA(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return printer.Sprintf("$%.2f", *v)
}

func percentOrNA(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func intOrNA(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatInt(*v, 10)
}

// changeOrNA appends the percent sign to the raw upstream value. The suffix
// is part of the template, so an absent value still renders as "N/A%".
func changeOrNA(v *string) string {
	if v == nil {
		return notAvailable + "%"
	}
	return *v + "%"
}

// formatTimestamp renders epoch seconds in local time, treating an absent
// timestamp as the epoch start.
func formatTimestamp(ts *int64) string {
	var seconds int64
	if ts != nil {
		seconds = *ts
	}
	return time.Unix(seconds, 0).Format(timeLayout)
}
