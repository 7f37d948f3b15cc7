package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ironloft/gymboard/internal/cache"
	"github.com/ironloft/gymboard/internal/logger"
)

// CacheCheckHeader marks a cache probe on the request (clients send
// "true") and carries the refresh verdict on the response so lightweight
// clients can skip parsing the body.
const CacheCheckHeader = "X-Cache-Check"

// Values for CacheCheckHeader
const (
	CacheCheckRequest = "true"
	CacheCheckRefresh = "refresh"
	CacheCheckOK      = "ok"
)

// CacheCheckResponse tells a client whether its cached data is stale
type CacheCheckResponse struct {
	ShouldInvalidate bool  `json:"shouldInvalidate"`
	LastInvalidation int64 `json:"lastInvalidation,omitempty"`
}

// HandleCacheCheck reports whether client caches must refetch
// @Summary Check cache freshness
// @Description Compares the client's last refresh time against the server-side invalidation signal
// @Tags cache
// @Produce json
// @Param X-Cache-Check header string false "Set to true to mark the request as a cache probe"
// @Param lastCacheTime query int false "Client's last refresh as a unix timestamp; omit to force a refresh verdict"
// @Success 200 {object} CacheCheckResponse
// @Router /api/v1/cache/check [get]
func HandleCacheCheck(signal *cache.Signal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := signal.LastInvalidation()

		if r.Header.Get(CacheCheckHeader) != CacheCheckRequest {
			// Older clients omit the probe marker; the endpoint serves
			// nothing else, so answer them anyway.
			logger.FromContext(r.Context()).Debug("Cache check without probe header")
		}

		// A client with no timestamp has no cache worth keeping.
		raw := GetOptionalQueryParam(r, "lastCacheTime", "")
		invalidate := true
		if raw != "" {
			seconds, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				logger.FromContext(r.Context()).Warn("Invalid lastCacheTime parameter", "value", raw)
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			invalidate = signal.ShouldInvalidate(time.Unix(seconds, 0))
		}

		verdict := CacheCheckOK
		if invalidate {
			verdict = CacheCheckRefresh
		}
		w.Header().Set(CacheCheckHeader, verdict)

		resp := CacheCheckResponse{ShouldInvalidate: invalidate}
		if !last.IsZero() {
			resp.LastInvalidation = last.Unix()
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
