package chart

import (
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Memo caches geometry keyed on the complete input tuple. It is safe for
// concurrent use; the plain functions remain the source of truth.
type Memo struct {
	cache *lru.Cache[string, any]
}

func NewMemo(size int) (*Memo, error) {
	c, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("chart memo: %w", err)
	}
	return &Memo{cache: c}, nil
}

func (m *Memo) Sparkline(values []float64, width, height float64) SparklineGeometry {
	key := memoKey("sparkline", values, width, height)
	if g, ok := m.cache.Get(key); ok {
		return g.(SparklineGeometry)
	}
	g := Sparkline(values, width, height)
	m.cache.Add(key, g)
	return g
}

func (m *Memo) Bars(labels []string, series []Series, opts BarOptions) BarGeometry {
	key := memoKey("bars", labels, series, opts)
	if g, ok := m.cache.Get(key); ok {
		return g.(BarGeometry)
	}
	g := Bars(labels, series, opts)
	m.cache.Add(key, g)
	return g
}

func (m *Memo) Donut(slices []Slice, size, thickness float64) DonutGeometry {
	key := memoKey("donut", slices, size, thickness)
	if g, ok := m.cache.Get(key); ok {
		return g.(DonutGeometry)
	}
	g := Donut(slices, size, thickness)
	m.cache.Add(key, g)
	return g
}

func (m *Memo) Len() int { return m.cache.Len() }

func memoKey(kind string, args ...any) string {
	b, err := json.Marshal(args)
	if err != nil {
		// NaN/Inf do not marshal; fall back to the fmt rendering.
		return kind + fmt.Sprint(args...)
	}
	return kind + string(b)
}
