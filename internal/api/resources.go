package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Decimal decodes Django DecimalFields, which arrive as JSON strings, as
// well as plain numbers.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("decimal %q: %w", s, err)
		}
		*d = Decimal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatFloat(float64(d), 'f', 2, 64))), nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          int         `json:"id"`
	Business    int         `json:"business"`
	Status      OrderStatus `json:"status"`
	PlacedAt    time.Time   `json:"placed_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Total       Decimal     `json:"total"`
}

type Item struct {
	ID               int     `json:"id"`
	Business         int     `json:"business"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	SKU              string  `json:"sku,omitempty"`
	CostPrice        Decimal `json:"cost_price"`
	LastSellingPrice Decimal `json:"last_selling_price"`
	Quantity         int     `json:"quantity"`
	Weight           int     `json:"weight"`
}

type Expenditure struct {
	ID          int       `json:"id"`
	Business    int       `json:"business"`
	Amount      Decimal   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	SpentAt     time.Time `json:"spent_at"`
}

type Stock struct {
	ID           int       `json:"id"`
	Item         int       `json:"item"`
	Quantity     int       `json:"quantity"`
	CostPrice    Decimal   `json:"cost_price"`
	SellingPrice Decimal   `json:"selling_price"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type NewExpenditure struct {
	Business    int     `json:"business"`
	Amount      Decimal `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	return list[Order](ctx, c, "/order/")
}

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	return list[Item](ctx, c, "/item/")
}

func (c *Client) ListExpenditures(ctx context.Context) ([]Expenditure, error) {
	return list[Expenditure](ctx, c, "/expenditure/")
}

func (c *Client) ListStock(ctx context.Context) ([]Stock, error) {
	return list[Stock](ctx, c, "/stock/")
}

func (c *Client) CreateExpenditure(ctx context.Context, e NewExpenditure) (Expenditure, error) {
	var out Expenditure
	if err := c.Post(ctx, "/expenditure/", e, &out); err != nil {
		return Expenditure{}, err
	}
	return out, nil
}

// list accepts both a bare JSON array and a limit/offset page.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)

	var out []T
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return out, nil
	}

	var page struct {
		Count   int `json:"count"`
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return page.Results, nil
}
