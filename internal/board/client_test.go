package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Endpoint:        server.URL,
		Token:           "test-token",
		APIVersion:      "2024-01",
		MinCallInterval: time.Nanosecond,
		RatePerMinute:   6000000,
		RetryAttempts:   3,
		RetryBackoff:    time.Millisecond,
	})
	require.NoError(t, err)
	return client, server
}

func respondData(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"data":` + data + `}`))
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingAPIToken)
}

func TestClient_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotVersion, gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("API-Version")
		gotContentType = r.Header.Get("Content-Type")
		respondData(w, `{"create_item":{"id":"42"}}`)
	})

	_, err := client.CreateItem(context.Background(), 111, "Alex", nil)

	require.NoError(t, err)
	assert.Equal(t, "test-token", gotAuth)
	assert.Equal(t, "2024-01", gotVersion)
	assert.Equal(t, "application/json", gotContentType)
}

func TestCreateItem_ReturnsNewID(t *testing.T) {
	var gotQuery gqlRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotQuery)
		respondData(w, `{"create_item":{"id":"12345"}}`)
	})

	id, err := client.CreateItem(context.Background(), 111, "Alex", map[string]any{"email": "a@b.com"})

	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)
	assert.Contains(t, gotQuery.Query, "create_item")
	assert.Equal(t, "111", gotQuery.Variables["boardID"])
}

func TestClient_RateLimitedStatusNormalized(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.CreateItem(context.Background(), 111, "Alex", nil)

	assert.ErrorIs(t, err, domain.ErrRemoteRateLimited)
	// Rate limiting is transient, so every attempt is used up.
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.UpdateItem(context.Background(), 111, 42, nil)

	assert.ErrorIs(t, err, domain.ErrRemoteItemNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GraphQLErrorCodesNormalized(t *testing.T) {
	cases := []struct {
		name string
		code string
		want error
	}{
		{"resource not found", "ResourceNotFoundException", domain.ErrRemoteItemNotFound},
		{"invalid item id", "InvalidItemIdException", domain.ErrRemoteItemNotFound},
		{"complexity budget", "ComplexityException", domain.ErrRemoteRateLimited},
		{"anything else", "SomeOtherException", domain.ErrRemoteUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"errors":[{"message":"nope","extensions":{"code":"` + tc.code + `"}}]}`))
			})

			err := client.ArchiveItem(context.Background(), 42)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		respondData(w, `{"create_item":{"id":"42"}}`)
	})

	id, err := client.CreateItem(context.Background(), 111, "Alex", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetItem_ParsesColumnValues(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{"items":[{
			"id":"42",
			"name":"Protein Bars",
			"column_values":[
				{"id":"numbers_1","value":"12","text":"12"},
				{"id":"status","value":"{\"label\":\"Active\"}","text":"Active"},
				{"id":"empty","value":"null","text":""},
				{"id":"text_only","value":"not-json{","text":"fallback"}
			]
		}]}`)
	})

	item, err := client.GetItem(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, "Protein Bars", item.Name)
	assert.Equal(t, float64(12), item.ColumnValues["numbers_1"])
	assert.Equal(t, map[string]any{"label": "Active"}, item.ColumnValues["status"])
	assert.NotContains(t, item.ColumnValues, "empty")
	// Raw values that are not JSON fall back to the display text.
	assert.Equal(t, "fallback", item.ColumnValues["text_only"])
}

func TestGetItem_MissingItem(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{"items":[]}`)
	})

	_, err := client.GetItem(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrRemoteItemNotFound)
}

func TestListItems_FollowsCursor(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			respondData(w, `{"boards":[{"items_page":{"cursor":"next","items":[{"id":"1","name":"a","column_values":[]}]}}]}`)
			return
		}
		respondData(w, `{"boards":[{"items_page":{"cursor":"","items":[{"id":"2","name":"b","column_values":[]}]}}]}`)
	})

	items, err := client.ListItems(context.Background(), 111)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetBoardColumns(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondData(w, `{"boards":[{"columns":[{"id":"email","title":"Email","type":"email"}]}]}`)
	})

	cols, err := client.GetBoardColumns(context.Background(), 111)

	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "email", cols[0].ID)
}
