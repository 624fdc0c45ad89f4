package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersPlainArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/order/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		_, _ = io.WriteString(w, `[{"id":1,"status":"completed","total":"120.50","placed_at":"2025-03-01T10:00:00Z"},
			{"id":2,"status":"pending","total":30,"placed_at":"2025-03-02T10:00:00Z"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1/")
	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, OrderCompleted, orders[0].Status)
	assert.Equal(t, Decimal(120.5), orders[0].Total)
	assert.Equal(t, Decimal(30), orders[1].Total)
}

func TestListItemsPaginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count":1,"next":null,"previous":null,"results":[{"id":7,"name":"Sugar 1kg","quantity":3,"cost_price":"2.00"}]}`)
	}))
	defer srv.Close()

	items, err := New(srv.URL).ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sugar 1kg", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"nope"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListStock(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, `API GET /stock/ failed: 403 Forbidden {"detail":"nope"}`, apiErr.Error())
}

func TestCreateExpenditure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "45.00", body["amount"])
		assert.Equal(t, "Transport", body["category"])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":9,"amount":"45.00","category":"Transport","description":"fuel"}`)
	}))
	defer srv.Close()

	e, err := New(srv.URL).CreateExpenditure(context.Background(), NewExpenditure{
		Business: 1, Amount: 45, Description: "fuel", Category: "Transport",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, e.ID)
	assert.Equal(t, Decimal(45), e.Amount)
}

func TestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]any
	require.NoError(t, New(srv.URL).Delete(context.Background(), "/order/1/", &out))
	assert.Nil(t, out)
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL).Get(ctx, "/item/", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecimalRejectsGarbage(t *testing.T) {
	var d Decimal
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &d))
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Equal(t, Decimal(0), d)
}
