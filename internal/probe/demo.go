package probe

import (
	"context"
	"time"

	"github.com/nexusriot/anacreon/internal/chart"
)

// DemoSampler serves fixed figures for running without a backend.
type DemoSampler struct {
	now func() time.Time
}

func NewDemoSampler() *DemoSampler {
	return &DemoSampler{now: time.Now}
}

func (d *DemoSampler) Sample(_ context.Context, r Range) (Snapshot, error) {
	host, up := HostInfo()
	return Snapshot{
		Range: r,
		KPIs: []KPI{
			{Label: "Revenue", Value: "$12,400", Change: "+8%", Series: []float64{4, 6, 5, 7, 9, 8, 10}},
			{Label: "Orders", Value: "87", Change: "+5%", Series: []float64{6, 5, 6, 7, 6, 7, 8}},
			{Label: "Items in Stock", Value: "320", Change: "+2%", Series: []float64{320, 321, 319, 320, 322, 323, 320}},
			{Label: "Expenditures", Value: "$2,100", Change: "-1%", Series: []float64{2.1, 2.2, 2.0, 2.1, 2.15, 2.05, 2.1}},
		},
		Months:      Months,
		Revenue:     []float64{10, 12, 9, 13, 14, 18, 15, 17, 16, 20, 19, 22},
		Expenditure: []float64{6, 7, 8, 7, 9, 10, 11, 10, 9, 12, 11, 13},
		OrderStatus: []chart.Slice{
			{Label: "Completed", Value: 62, Color: "#10b981"},
			{Label: "Pending", Value: 18, Color: "#a3a3a3"},
			{Label: "Cancelled", Value: 7, Color: "#ef4444"},
		},
		LowStock: []LowStockItem{
			{Name: "Bread", Qty: 2},
			{Name: "Sugar 1kg", Qty: 3},
			{Name: "Milk 500ml", Qty: 5},
		},
		Hostname: host,
		Uptime:   up,
		TakenAt:  d.now(),
	}, nil
}
