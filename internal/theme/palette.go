package theme

// Palette lists the colors the views draw with, as "#rrggbb".
type Palette struct {
	Text     string
	Subtle   string
	Accent   string
	AccentFg string
	OK       string
	Warn     string
	Error    string
	Border   string
	Revenue  string
	Expense  string
	Neutral  string
}

func PaletteFor(t Theme) Palette {
	if t == Dark {
		return Palette{
			Text:     "#e5e7eb",
			Subtle:   "#9ca3af",
			Accent:   "#2563eb",
			AccentFg: "#ffffff",
			OK:       "#34d399",
			Warn:     "#fbbf24",
			Error:    "#f87171",
			Border:   "#404040",
			Revenue:  "#86efac",
			Expense:  "#fca5a5",
			Neutral:  "#94a3b8",
		}
	}
	return Palette{
		Text:     "#111827",
		Subtle:   "#6b7280",
		Accent:   "#2563eb",
		AccentFg: "#ffffff",
		OK:       "#059669",
		Warn:     "#d97706",
		Error:    "#dc2626",
		Border:   "#d1d5db",
		Revenue:  "#16a34a",
		Expense:  "#ef4444",
		Neutral:  "#64748b",
	}
}

// KPIColor is the series color for a KPI card: revenue green, expenditures
// red, everything else neutral.
func (p Palette) KPIColor(label string) string {
	switch label {
	case "Revenue":
		return p.Revenue
	case "Expenditures":
		return p.Expense
	}
	return p.Neutral
}
