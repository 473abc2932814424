package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calyptra/storefront/cart/pkg/request"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	"github.com/calyptra/storefront/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.CartApi{BaseURL: url, TimeoutSeconds: 5})
}

func TestClientAddLineSendsSessionAndPayload(t *testing.T) {
	var gotPath, gotSession string
	var gotBody map[string]interface{}
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotSession = r.Header.Get("X-Cart-Session")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{
				"items": [{"key": "line-1", "variant_id": "variant-1", "quantity": 2, "price": 1000, "line_price": 2000, "product_title": "Harbor Mug"}],
				"item_count": 2,
				"total_price": 2000,
				"currency": "USD"
			}`))
			assert.NoError(t, err)
		}),
	)
	defer server.Close()

	snapshot, err := newTestClient(server.URL).AddLine(
		context.Background(),
		"session-1",
		request.AddLine{VariantID: "variant-1", Quantity: 2},
	)

	assert.NoError(t, err)
	assert.Equal(t, "/cart/add.js", gotPath)
	assert.Equal(t, "session-1", gotSession)
	assert.Equal(t, "variant-1", gotBody["id"])
	assert.EqualValues(t, 2, gotBody["quantity"])
	assert.EqualValues(t, 2, snapshot.ItemCount)
	assert.EqualValues(t, 2000, snapshot.Subtotal)
	assert.Equal(t, "20.00", snapshot.FormattedSubtotal)
	assert.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "Harbor Mug", snapshot.Lines[0].ProductTitle)
}

func TestClientBulkUpdatePayloadShape(t *testing.T) {
	var gotBody map[string]map[string]int64
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cart/update.js", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, err := w.Write([]byte(`{"items": [], "item_count": 0, "total_price": 0, "currency": "USD"}`))
			assert.NoError(t, err)
		}),
	)
	defer server.Close()

	_, err := newTestClient(server.URL).BulkUpdate(
		context.Background(),
		"session-1",
		map[string]int64{"line-1": 3, "line-2": 0},
	)

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"line-1": 3, "line-2": 0}, gotBody["updates"])
}

func TestClientErrorStatusIncludesDescription(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "given description field should surface it",
			body:        `{"status": "unprocessable", "description": "All 3 Size / Red are in your cart."}`,
			expectedMsg: "All 3 Size / Red are in your cart.",
		},
		{
			name:        "given message field should surface it",
			body:        `{"message": "Cart Error"}`,
			expectedMsg: "Cart Error",
		},
		{
			name:        "given unparseable body should fall back to generic message",
			body:        `<html>upstream exploded</html>`,
			expectedMsg: "cart request failed, please try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusUnprocessableEntity)
					_, err := w.Write([]byte(tt.body))
					assert.NoError(t, err)
				}),
			)
			defer server.Close()

			_, err := newTestClient(server.URL).ChangeLine(
				context.Background(),
				"session-1",
				"line-1",
				2,
			)

			assert.ErrorIs(t, err, inErrors.ErrCartMutationFailed)
			assert.ErrorContains(t, err, tt.expectedMsg)
		})
	}
}

func TestClientRejectsMalformedCartPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "given item count not matching quantity sum",
			body: `{"items": [{"key": "line-1", "variant_id": "variant-1", "quantity": 2}], "item_count": 5, "total_price": 0, "currency": "USD"}`,
		},
		{
			name: "given negative line quantity",
			body: `{"items": [{"key": "line-1", "variant_id": "variant-1", "quantity": -1}], "item_count": -1, "total_price": 0, "currency": "USD"}`,
		},
		{
			name: "given line missing key",
			body: `{"items": [{"variant_id": "variant-1", "quantity": 1}], "item_count": 1, "total_price": 0, "currency": "USD"}`,
		},
		{
			name: "given body that is not json",
			body: `not json at all`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, err := w.Write([]byte(tt.body))
					assert.NoError(t, err)
				}),
			)
			defer server.Close()

			_, err := newTestClient(server.URL).FetchCart(context.Background(), "session-1")

			assert.ErrorIs(t, err, inErrors.ErrMalformedCart)
		})
	}
}

func TestClientUnreachableUpstreamFailsMutation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).FetchCart(context.Background(), "session-1")

	assert.ErrorIs(t, err, inErrors.ErrCartMutationFailed)
}
