package probe

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nexusriot/anacreon/internal/api"
	"github.com/nexusriot/anacreon/internal/chart"
)

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
)

func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case Range7d, Range30d, Range90d:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want 7d, 30d or 90d)", s)
}

func (r Range) Days() int {
	switch r {
	case Range30d:
		return 30
	case Range90d:
		return 90
	}
	return 7
}

var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var statusColors = map[api.OrderStatus]string{
	api.OrderCompleted: "#10b981",
	api.OrderPending:   "#a3a3a3",
	api.OrderCancelled: "#ef4444",
}

type KPI struct {
	Label  string
	Value  string
	Change string
	Series []float64
}

type LowStockItem struct {
	Name string
	Qty  int
}

type Snapshot struct {
	Range       Range
	KPIs        []KPI
	Months      []string
	Revenue     []float64
	Expenditure []float64
	OrderStatus []chart.Slice
	LowStock    []LowStockItem

	Hostname string
	Uptime   time.Duration
	TakenAt  time.Time
}

// MonthlySeries is the revenue-vs-expenditure bar chart input.
func (s Snapshot) MonthlySeries(revenueColor, expenseColor string) []chart.Series {
	return []chart.Series{
		{Name: "Revenue", Values: s.Revenue, Color: revenueColor},
		{Name: "Expenditures", Values: s.Expenditure, Color: expenseColor},
	}
}

type Source interface {
	ListOrders(ctx context.Context) ([]api.Order, error)
	ListItems(ctx context.Context) ([]api.Item, error)
	ListExpenditures(ctx context.Context) ([]api.Expenditure, error)
	ListStock(ctx context.Context) ([]api.Stock, error)
}

type Sampler interface {
	Sample(ctx context.Context, r Range) (Snapshot, error)
}

// APISampler aggregates backend records into dashboard figures.
type APISampler struct {
	src      Source
	lowStock int
	log      *zap.Logger
	now      func() time.Time
	host     func() (string, time.Duration)
}

func NewAPISampler(src Source, lowStockThreshold int, log *zap.Logger) *APISampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APISampler{
		src:      src,
		lowStock: lowStockThreshold,
		log:      log,
		now:      time.Now,
		host:     HostInfo,
	}
}

func (s *APISampler) Sample(ctx context.Context, r Range) (Snapshot, error) {
	var (
		orders []api.Order
		items  []api.Item
		exps   []api.Expenditure
		stock  []api.Stock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { orders, err = s.src.ListOrders(gctx); return })
	g.Go(func() (err error) { items, err = s.src.ListItems(gctx); return })
	g.Go(func() (err error) { exps, err = s.src.ListExpenditures(gctx); return })
	g.Go(func() (err error) { stock, err = s.src.ListStock(gctx); return })
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("sampling dashboard: %w", err)
	}

	now := s.now()
	snap := Snapshot{Range: r, Months: Months, TakenAt: now}
	snap.Hostname, snap.Uptime = s.host()

	days := r.Days()
	rev := newDaily(now, days)
	cnt := newDaily(now, days)
	exp := newDaily(now, days)
	recv := newDaily(now, days)

	snap.Revenue = make([]float64, 12)
	snap.Expenditure = make([]float64, 12)

	statusCount := map[api.OrderStatus]float64{}
	for _, o := range orders {
		statusCount[o.Status]++
		cnt.add(o.PlacedAt, 1)
		if o.Status != api.OrderCompleted {
			continue
		}
		at := o.PlacedAt
		if o.CompletedAt != nil {
			at = *o.CompletedAt
		}
		rev.add(at, float64(o.Total))
		if at.Year() == now.Year() {
			snap.Revenue[at.Month()-1] += float64(o.Total)
		}
	}
	for _, e := range exps {
		exp.add(e.SpentAt, float64(e.Amount))
		if e.SpentAt.Year() == now.Year() {
			snap.Expenditure[e.SpentAt.Month()-1] += float64(e.Amount)
		}
	}
	for _, st := range stock {
		recv.add(st.RecordedAt, float64(st.Quantity))
	}

	inStock := 0
	for _, it := range items {
		inStock += it.Quantity
		// the threshold itself counts as low
		if it.Quantity <= s.lowStock {
			snap.LowStock = append(snap.LowStock, LowStockItem{Name: it.Name, Qty: it.Quantity})
		}
	}
	sort.SliceStable(snap.LowStock, func(i, j int) bool { return snap.LowStock[i].Qty < snap.LowStock[j].Qty })

	snap.KPIs = []KPI{
		{Label: "Revenue", Value: HumanMoney(rev.total()), Change: ChangePercent(rev.prevTotal(), rev.total()), Series: rev.current()},
		{Label: "Orders", Value: HumanCount(cnt.total()), Change: ChangePercent(cnt.prevTotal(), cnt.total()), Series: cnt.current()},
		{Label: "Items in Stock", Value: HumanCount(float64(inStock)), Change: ChangePercent(recv.prevTotal(), recv.total()), Series: recv.current()},
		{Label: "Expenditures", Value: HumanMoney(exp.total()), Change: ChangePercent(exp.prevTotal(), exp.total()), Series: exp.current()},
	}

	for _, st := range []api.OrderStatus{api.OrderCompleted, api.OrderPending, api.OrderCancelled} {
		snap.OrderStatus = append(snap.OrderStatus, chart.Slice{
			Label: statusLabel(st),
			Value: statusCount[st],
			Color: statusColors[st],
		})
	}

	s.log.Debug("dashboard sampled",
		zap.String("range", string(r)),
		zap.Int("orders", len(orders)),
		zap.Int("items", len(items)),
		zap.Int("expenditures", len(exps)),
	)
	return snap, nil
}

func statusLabel(st api.OrderStatus) string {
	switch st {
	case api.OrderCompleted:
		return "Completed"
	case api.OrderPending:
		return "Pending"
	case api.OrderCancelled:
		return "Cancelled"
	}
	return string(st)
}

// daily buckets the current window of n days plus the n days before it,
// so the KPI change can compare like with like.
type daily struct {
	start   time.Time
	n       int
	buckets []float64
}

func newDaily(now time.Time, n int) *daily {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &daily{
		start:   today.AddDate(0, 0, -(2*n - 1)),
		n:       n,
		buckets: make([]float64, 2*n),
	}
}

func (d *daily) add(at time.Time, v float64) {
	at = at.In(d.start.Location())
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	// rounded so a DST shift of an hour stays on the right day
	i := int(math.Round(day.Sub(d.start).Hours() / 24))
	if i < 0 || i >= len(d.buckets) {
		return
	}
	d.buckets[i] += v
}

func (d *daily) current() []float64 { return append([]float64(nil), d.buckets[d.n:]...) }

func (d *daily) total() float64 { return sum(d.buckets[d.n:]) }

func (d *daily) prevTotal() float64 { return sum(d.buckets[:d.n]) }

func sum(vs []float64) float64 {
	var t float64
	for _, v := range vs {
		t += v
	}
	return t
}
