package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"pumprank-api/internal/client/gmgn"
	"pumprank-api/internal/logger"
	"pumprank-api/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// defaultLimit is used when the caller omits the limit query parameter.
	defaultLimit = 10

	// noTokenDataMsg is the only failure detail the caller ever sees; it
	// covers both a failed fetch and a genuinely empty ranking.
	noTokenDataMsg = "No token data retrieved."
)

// TokenFetcher is the upstream surface the token handler depends on.
type TokenFetcher interface {
	TopPumpingTokens(ctx context.Context, limit int) ([]gmgn.TokenRecord, error)
}

// TokenHandler serves the formatted top-token listing.
type TokenHandler struct {
	fetcher TokenFetcher
}

// NewTokenHandler creates a new TokenHandler backed by the given fetcher.
func NewTokenHandler(fetcher TokenFetcher) *TokenHandler {
	return &TokenHandler{fetcher: fetcher}
}

// TokenListResponse carries the formatted token blocks in upstream rank order.
type TokenListResponse struct {
	Tokens []string `json:"tokens"`
}

// GetTopTokens handles GET /top-tokens/. It fetches the ranked token list
// (limit defaults to 10, clamped to 1-50 by the client) and responds with one
// formatted text block per token. Any fetch failure or an empty ranking
// collapses to the generic error envelope; the classified failure detail only
// goes to the log.
func (h *TokenHandler) GetTopTokens(c *gin.Context) {
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, "Invalid limit parameter", err)
			return
		}
		limit = parsed
	}

	records, err := h.fetcher.TopPumpingTokens(c.Request.Context(), limit)
	if err != nil {
		fields := []zap.Field{
			zap.Error(err),
			zap.Int("limit", limit),
			zap.String("request_id", c.GetString("request_id")),
		}
		var apiErr *gmgn.Error
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.Stringer("kind", apiErr.Kind))
		}
		logger.Error("top token fetch failed", fields...)
		sendSuccess(c, http.StatusOK, ErrorResponse{Error: noTokenDataMsg})
		return
	}

	if len(records) == 0 {
		sendSuccess(c, http.StatusOK, ErrorResponse{Error: noTokenDataMsg})
		return
	}

	formatted := make([]string, len(records))
	for i, record := range records {
		formatted[i] = report.Format(record)
	}

	sendSuccess(c, http.StatusOK, TokenListResponse{Tokens: formatted})
}
