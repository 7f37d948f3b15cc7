package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/metrics"
)

// Client executes queries and mutations against the board platform API.
// It knows nothing about entity semantics; callers pass board ids and
// already-encoded column values.
type Client interface {
	GetBoardColumns(ctx context.Context, boardID int64) ([]Column, error)
	ListItems(ctx context.Context, boardID int64) ([]Item, error)
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	CreateItem(ctx context.Context, boardID int64, name string, columnValues map[string]any) (int64, error)
	UpdateItem(ctx context.Context, boardID, itemID int64, columnValues map[string]any) error
	ArchiveItem(ctx context.Context, itemID int64) error
}

// Column describes one remote board column.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Item is one remote board item with its raw column values keyed by column id.
type Item struct {
	ID           int64
	Name         string
	ColumnValues map[string]any
}

// Config tunes the HTTP client.
type Config struct {
	Endpoint        string
	Token           string
	APIVersion      string
	MinCallInterval time.Duration
	RatePerMinute   int
	RetryAttempts   int
	RetryBackoff    time.Duration
}

type httpClient struct {
	endpoint   string
	token      string
	apiVersion string
	http       *http.Client
	pacer      *Pacer
	attempts   int
	backoff    time.Duration
}

// NewClient creates a board API client. The token is required; every other
// field falls back to a default.
func NewClient(cfg Config) (Client, error) {
	if cfg.Token == "" {
		return nil, domain.ErrMissingAPIToken
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.MinCallInterval <= 0 {
		cfg.MinCallInterval = DefaultMinCallInterval
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}

	return &httpClient{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		apiVersion: cfg.APIVersion,
		http:       &http.Client{Timeout: RequestTimeout},
		pacer:      NewPacer(cfg.MinCallInterval, cfg.RatePerMinute),
		attempts:   cfg.RetryAttempts,
		backoff:    cfg.RetryBackoff,
	}, nil
}

// graphQL wire types

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code       string `json:"code"`
		StatusCode int    `json:"status_code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do executes one GraphQL call with pacing, retry on transient failures, and
// error normalization. Not-found and auth errors are never retried.
func (c *httpClient) do(ctx context.Context, operation string, req gqlRequest, out any) error {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}

		err := c.doOnce(ctx, operation, req, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			return err
		}
		if attempt == c.attempts {
			break
		}

		logger.FromContext(ctx).Warn(LogMsgRetrying,
			"operation", operation,
			"attempt", attempt,
			"backoff", backoff,
			"error", err)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		backoff = time.Duration(float64(backoff) * BackoffMultiplier)
		if backoff > MaxRetryBackoff {
			backoff = MaxRetryBackoff
		}
	}

	return lastErr
}

func (c *httpClient) doOnce(ctx context.Context, operation string, req gqlRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.token)
	httpReq.Header.Set("API-Version", c.apiVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.BoardAPIRequests.WithLabelValues(operation, "network_error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BoardAPIRequests.WithLabelValues(operation, "read_error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.BoardAPIRequests.WithLabelValues(operation, "rate_limited").Inc()
		return domain.ErrRemoteRateLimited
	case resp.StatusCode == http.StatusNotFound:
		metrics.BoardAPIRequests.WithLabelValues(operation, "not_found").Inc()
		return domain.ErrRemoteItemNotFound
	case resp.StatusCode >= 400:
		metrics.BoardAPIRequests.WithLabelValues(operation, "http_error").Inc()
		return fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var gql gqlResponse
	if err := json.Unmarshal(raw, &gql); err != nil {
		metrics.BoardAPIRequests.WithLabelValues(operation, "bad_response").Inc()
		return fmt.Errorf("%w: unparseable response", domain.ErrRemoteUnavailable)
	}

	if len(gql.Errors) > 0 {
		return c.normalizeError(operation, gql.Errors[0])
	}

	metrics.BoardAPIRequests.WithLabelValues(operation, "ok").Inc()

	if out != nil {
		if err := json.Unmarshal(gql.Data, out); err != nil {
			return fmt.Errorf("%w: unexpected data shape", domain.ErrRemoteUnavailable)
		}
	}
	return nil
}

// normalizeError maps a GraphQL error to a domain error so callers can act on
// classification instead of message text.
func (c *httpClient) normalizeError(operation string, e gqlError) error {
	switch e.Extensions.Code {
	case ErrorCodeNotFound, ErrorCodeInvalidItem, ErrorCodeInvalidBoard:
		metrics.BoardAPIRequests.WithLabelValues(operation, "not_found").Inc()
		return fmt.Errorf("%w: %s", domain.ErrRemoteItemNotFound, e.Message)
	case ErrorCodeRateLimited, ErrorCodeComplexity:
		metrics.BoardAPIRequests.WithLabelValues(operation, "rate_limited").Inc()
		return fmt.Errorf("%w: %s", domain.ErrRemoteRateLimited, e.Message)
	}
	if e.Extensions.StatusCode == http.StatusNotFound {
		metrics.BoardAPIRequests.WithLabelValues(operation, "not_found").Inc()
		return fmt.Errorf("%w: %s", domain.ErrRemoteItemNotFound, e.Message)
	}
	metrics.BoardAPIRequests.WithLabelValues(operation, "api_error").Inc()
	return fmt.Errorf("%w: %s", domain.ErrRemoteUnavailable, e.Message)
}

// isTransient reports whether a call is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrRemoteItemNotFound) {
		return false
	}
	return errors.Is(err, domain.ErrRemoteUnavailable) || errors.Is(err, domain.ErrRemoteRateLimited)
}

// wire shapes for responses

type wireColumnValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Text  string `json:"text"`
}

type wireItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ColumnValues []wireColumnValue `json:"column_values"`
}

func (w wireItem) toItem() Item {
	item := Item{Name: w.Name, ColumnValues: make(map[string]any, len(w.ColumnValues))}
	item.ID, _ = strconv.ParseInt(w.ID, 10, 64)
	for _, cv := range w.ColumnValues {
		if cv.Value == "" || cv.Value == "null" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(cv.Value), &v); err != nil {
			// Fall back to the display text when the raw value is not JSON.
			if cv.Text != "" {
				v = cv.Text
			} else {
				continue
			}
		}
		item.ColumnValues[cv.ID] = v
	}
	return item
}

// GetBoardColumns reads the column layout of a board.
func (c *httpClient) GetBoardColumns(ctx context.Context, boardID int64) ([]Column, error) {
	const query = `query ($boardID: [ID!]) { boards (ids: $boardID) { columns { id title type } } }`

	var data struct {
		Boards []struct {
			Columns []Column `json:"columns"`
		} `json:"boards"`
	}
	err := c.do(ctx, "get_board_columns", gqlRequest{
		Query:     query,
		Variables: map[string]any{"boardID": []string{strconv.FormatInt(boardID, 10)}},
	}, &data)
	if err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 {
		return nil, fmt.Errorf("%w: board %d", domain.ErrRemoteItemNotFound, boardID)
	}
	return data.Boards[0].Columns, nil
}

// ListItems pages through every item on a board.
func (c *httpClient) ListItems(ctx context.Context, boardID int64) ([]Item, error) {
	const query = `query ($boardID: [ID!], $limit: Int!, $cursor: String) {
		boards (ids: $boardID) {
			items_page (limit: $limit, cursor: $cursor) {
				cursor
				items { id name column_values { id value text } }
			}
		}
	}`

	var items []Item
	var cursor *string
	for {
		vars := map[string]any{
			"boardID": []string{strconv.FormatInt(boardID, 10)},
			"limit":   ItemsPageSize,
		}
		if cursor != nil {
			vars["cursor"] = *cursor
		}

		var data struct {
			Boards []struct {
				ItemsPage struct {
					Cursor string     `json:"cursor"`
					Items  []wireItem `json:"items"`
				} `json:"items_page"`
			} `json:"boards"`
		}
		if err := c.do(ctx, "list_items", gqlRequest{Query: query, Variables: vars}, &data); err != nil {
			return nil, err
		}
		if len(data.Boards) == 0 {
			return nil, fmt.Errorf("%w: board %d", domain.ErrRemoteItemNotFound, boardID)
		}

		page := data.Boards[0].ItemsPage
		for _, w := range page.Items {
			items = append(items, w.toItem())
		}
		if page.Cursor == "" || len(page.Items) == 0 {
			return items, nil
		}
		cursor = &page.Cursor
	}
}

// GetItem reads a single item by id.
func (c *httpClient) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	const query = `query ($itemID: [ID!]) { items (ids: $itemID) { id name column_values { id value text } } }`

	var data struct {
		Items []wireItem `json:"items"`
	}
	err := c.do(ctx, "get_item", gqlRequest{
		Query:     query,
		Variables: map[string]any{"itemID": []string{strconv.FormatInt(itemID, 10)}},
	}, &data)
	if err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return nil, fmt.Errorf("%w: item %d", domain.ErrRemoteItemNotFound, itemID)
	}
	item := data.Items[0].toItem()
	return &item, nil
}

// CreateItem creates an item and returns its id.
func (c *httpClient) CreateItem(ctx context.Context, boardID int64, name string, columnValues map[string]any) (int64, error) {
	const query = `mutation ($boardID: ID!, $name: String!, $columnValues: JSON) {
		create_item (board_id: $boardID, item_name: $name, column_values: $columnValues) { id }
	}`

	colJSON, err := json.Marshal(columnValues)
	if err != nil {
		return 0, fmt.Errorf("marshal column values: %w", err)
	}

	var data struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	err = c.do(ctx, "create_item", gqlRequest{
		Query: query,
		Variables: map[string]any{
			"boardID":      strconv.FormatInt(boardID, 10),
			"name":         name,
			"columnValues": string(colJSON),
		},
	}, &data)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(data.CreateItem.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad item id %q", domain.ErrRemoteUnavailable, data.CreateItem.ID)
	}
	logger.FromContext(ctx).Debug(LogMsgItemCreated, "board_id", boardID, "item_id", id)
	return id, nil
}

// UpdateItem overwrites multiple column values on an existing item.
func (c *httpClient) UpdateItem(ctx context.Context, boardID, itemID int64, columnValues map[string]any) error {
	const query = `mutation ($boardID: ID!, $itemID: ID!, $columnValues: JSON!) {
		change_multiple_column_values (board_id: $boardID, item_id: $itemID, column_values: $columnValues) { id }
	}`

	colJSON, err := json.Marshal(columnValues)
	if err != nil {
		return fmt.Errorf("marshal column values: %w", err)
	}

	err = c.do(ctx, "update_item", gqlRequest{
		Query: query,
		Variables: map[string]any{
			"boardID":      strconv.FormatInt(boardID, 10),
			"itemID":       strconv.FormatInt(itemID, 10),
			"columnValues": string(colJSON),
		},
	}, nil)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgItemUpdated, "board_id", boardID, "item_id", itemID)
	return nil
}

// ArchiveItem archives an item on the board.
func (c *httpClient) ArchiveItem(ctx context.Context, itemID int64) error {
	const query = `mutation ($itemID: ID!) { archive_item (item_id: $itemID) { id } }`

	err := c.do(ctx, "archive_item", gqlRequest{
		Query:     query,
		Variables: map[string]any{"itemID": strconv.FormatInt(itemID, 10)},
	}, nil)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgItemArchived, "item_id", itemID)
	return nil
}
