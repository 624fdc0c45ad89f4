package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/settings"
	"github.com/nexusriot/anacreon/internal/theme"
)

type tab int

const (
	tabOverview tab = iota
	tabBusinesses
	tabCategories
	tabUsers
	tabIntegrations
	tabCount

	headerH = 1
	footerH = 1
)

var tabNames = [tabCount]string{"Overview", "Businesses", "Categories", "Users", "Integrations"}

const sampleTimeout = 10 * time.Second

type tickMsg time.Time
type snapMsg probe.Snapshot
type errMsg struct{ error }
type themeMsg theme.Theme

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type Options struct {
	Sampler probe.Sampler
	Stores  settings.Stores
	Theme   *theme.Provider
	Refresh time.Duration
	Range   probe.Range
	Logger  *zap.Logger
	Version string
}

type Model struct {
	w, h int

	opts   Options
	log    *zap.Logger
	st     styles
	themeC chan theme.Theme
	unsub  func()

	activeTab tab
	rng       probe.Range
	snap      probe.Snapshot
	loading   bool
	err       error

	overviewVP   viewport.Model
	overviewText string

	businesses panel[settings.Business]
	categories panel[settings.ExpenditureCategory]
	users      []settings.User
	integr     []settings.Integration
}

func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Theme == nil {
		opts.Theme = theme.NewProvider(&theme.MemoryStorage{}, opts.Logger)
	}
	if opts.Sampler == nil {
		opts.Sampler = probe.NewDemoSampler()
	}
	if opts.Stores.Businesses == nil || opts.Stores.Categories == nil {
		opts.Stores = settings.NewSeededStores()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 30 * time.Second
	}
	if opts.Range == "" {
		opts.Range = probe.Range7d
	}

	// Latest theme wins; a pending one is replaced rather than queued.
	ch := make(chan theme.Theme, 1)
	unsub := opts.Theme.Subscribe(func(t theme.Theme) {
		for {
			select {
			case ch <- t:
				return
			default:
				select {
				case <-ch:
				default:
				}
			}
		}
	})

	return Model{
		opts:       opts,
		log:        opts.Logger,
		st:         newStyles(opts.Theme.Get()),
		themeC:     ch,
		unsub:      unsub,
		activeTab:  tabOverview,
		rng:        opts.Range,
		loading:    true,
		overviewVP: viewport.New(0, 0),
		businesses: newPanel("Business", opts.Stores.Businesses, func(b settings.Business) row {
			return row{name: b.Name, desc: b.Description, active: b.IsActive}
		}),
		categories: newPanel("Category", opts.Stores.Categories, func(c settings.ExpenditureCategory) row {
			return row{name: c.Name, desc: c.Description, active: c.IsActive}
		}),
		users:  settings.Users(),
		integr: settings.Integrations(),
	}
}

// Close drops the theme subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sampleCmd(),
		m.waitThemeCmd(),
		tickEvery(m.opts.Refresh),
	)
}

// bodyHeight returns height available for the tab body area.
func (m Model) bodyHeight() int {
	return max(8, m.h-headerH-footerH-2)
}

func (m Model) bodyWidth() int {
	return max(20, min(m.w-2, 140))
}

func (m Model) sampleCmd() tea.Cmd {
	sampler, rng, log := m.opts.Sampler, m.rng, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()
		snap, err := sampler.Sample(ctx, rng)
		if err != nil {
			log.Warn("sample failed", zap.String("range", string(rng)), zap.Error(err))
			return errMsg{err}
		}
		return snapMsg(snap)
	}
}

func (m Model) waitThemeCmd() tea.Cmd {
	ch := m.themeC
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return themeMsg(t)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.overviewVP.Width = max(10, m.bodyWidth()-4)
		m.overviewVP.Height = max(5, m.bodyHeight()-2)
		m.refreshOverview()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.sampleCmd(), tickEvery(m.opts.Refresh))

	case snapMsg:
		snap := probe.Snapshot(msg)
		// a slow sample for a range we already left is stale
		if snap.Range != "" && snap.Range != m.rng {
			return m, nil
		}
		m.snap = snap
		m.loading = false
		m.err = nil
		m.refreshOverview()
		return m, nil

	case errMsg:
		m.err = msg.error
		m.loading = false
		return m, nil

	case themeMsg:
		m.st = newStyles(theme.Theme(msg))
		m.refreshOverview()
		return m, m.waitThemeCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturing() {
			return m.updateTab(msg)
		}
		switch msg.String() {
		case "tab", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "left":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "t":
			m.st = newStyles(m.opts.Theme.Toggle())
			m.refreshOverview()
			return m, nil
		case "r":
			m.loading = true
			return m, m.sampleCmd()
		case "7", "3", "9":
			if m.activeTab != tabOverview {
				break
			}
			r := map[string]probe.Range{"7": probe.Range7d, "3": probe.Range30d, "9": probe.Range90d}[msg.String()]
			if r == m.rng {
				return m, nil
			}
			m.rng = r
			m.loading = true
			m.refreshOverview()
			return m, m.sampleCmd()
		}
		return m.updateTab(msg)
	}

	if m.activeTab == tabOverview {
		var cmd tea.Cmd
		m.overviewVP, cmd = m.overviewVP.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) capturing() bool {
	switch m.activeTab {
	case tabBusinesses:
		return m.businesses.capturing()
	case tabCategories:
		return m.categories.capturing()
	}
	return false
}

func (m Model) updateTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabBusinesses:
		m.businesses, cmd = m.businesses.update(msg)
	case tabCategories:
		m.categories, cmd = m.categories.update(msg)
	case tabOverview:
		m.overviewVP, cmd = m.overviewVP.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()

	var body string
	w, h := m.bodyWidth(), m.bodyHeight()
	switch m.activeTab {
	case tabOverview:
		body = m.st.box.Width(w).Height(h).Render(m.overviewVP.View())
	case tabBusinesses:
		body = m.st.box.Width(w).Height(h).Render(m.businesses.view(m.st, w-4, h-2))
	case tabCategories:
		body = m.st.box.Width(w).Height(h).Render(m.categories.view(m.st, w-4, h-2))
	case tabUsers:
		body = m.st.box.Width(w).Height(h).Render(clipLines(m.renderUsers(w-4), w-4))
	case tabIntegrations:
		body = m.st.box.Width(w).Height(h).Render(clipLines(m.renderIntegrations(w-4), w-4))
	}

	footer := m.st.subtle.Render("Keys: tab/shift+tab • ←/→ • 7/3/9 range • r refresh • t theme • ctrl+c quit")
	if m.err != nil {
		footer = m.st.err.Render("Error: " + m.err.Error())
	}

	footer = clipLine(footer, m.w)
	footer = lipgloss.NewStyle().Width(m.w).Render(footer)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer) + "\x1b[0m"
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		tabs = append(tabs, m.renderTab(name, m.activeTab == tab(i)))
	}

	left := m.st.title.Render("anacreon "+m.opts.Version) + " " + m.st.subtle.Render(string(m.opts.Theme.Get()))

	rem := max(0, m.w-lipgloss.Width(left))
	right := fitTabs(tabs, rem, m.st.subtle.Render("…"))

	line := left + padLeft(right, rem)
	return lipgloss.NewStyle().Width(m.w).Render(line)
}

func (m Model) renderTab(s string, active bool) string {
	if active {
		return m.st.selected.Padding(0, 1).Render(s)
	}
	return m.st.subtle.Padding(0, 1).Render(s)
}

func (m *Model) refreshOverview() {
	m.overviewText = clipLines(m.renderOverviewText(), m.overviewVP.Width)
	m.overviewVP.SetContent(m.overviewText)
}

func (m Model) renderRangeSelector() string {
	keys := map[probe.Range]string{probe.Range7d: "7", probe.Range30d: "3", probe.Range90d: "9"}
	parts := make([]string, 0, 3)
	for _, r := range []probe.Range{probe.Range7d, probe.Range30d, probe.Range90d} {
		label := fmt.Sprintf("%s %s", keys[r], r)
		if r == m.rng {
			parts = append(parts, m.st.selected.Padding(0, 1).Render(label))
		} else {
			parts = append(parts, m.st.subtle.Padding(0, 1).Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderOverviewText() string {
	w := m.overviewVP.Width
	if w <= 0 {
		w = 100
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("Overview") + "  " + m.renderRangeSelector() + "\n\n")

	if m.snap.TakenAt.IsZero() {
		if m.loading {
			b.WriteString("Collecting data…\n")
		} else {
			b.WriteString(m.st.subtle.Render("No data.") + "\n")
		}
		return b.String()
	}
	if m.loading {
		b.WriteString(m.st.subtle.Render("refreshing…") + "\n")
	}

	b.WriteString(m.renderKPIs(w) + "\n\n")

	b.WriteString(m.st.title.Render("Revenue vs Expenditures") + "  " +
		fg(m.st.palette.Revenue).Render("■ Revenue") + " " +
		fg(m.st.palette.Expense).Render("■ Expenditures") + "\n")
	series := m.snap.MonthlySeries(m.st.palette.Revenue, m.st.palette.Expense)
	for _, line := range BarChart(m.snap.Months, series, max(12, w-2), 6) {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.st.title.Render("Orders by Status") + "\n")
	g := chart.Donut(m.snap.OrderStatus, chart.DefaultDonutSize, chart.DefaultDonutThickness)
	b.WriteString(DonutBar(g, max(10, min(w-2, 60)), m.st.subtle.Render("No orders yet.")) + "\n")
	for _, line := range DonutLegend(g) {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.st.title.Render("Low Stock") + "\n")
	if len(m.snap.LowStock) == 0 {
		b.WriteString(m.st.ok.Render("All items above threshold.") + "\n")
	}
	for _, it := range m.snap.LowStock {
		qty := m.st.warn
		if it.Qty <= 0 {
			qty = m.st.err
		}
		b.WriteString(fmt.Sprintf("%s %s\n", padRight(trunc(it.Name, 24), 24), qty.Render(fmt.Sprintf("%d left", it.Qty))))
	}
	b.WriteString("\n")

	b.WriteString(m.st.subtle.Render(fmt.Sprintf("Host %s • up %s • updated %s (%s ago)",
		m.snap.Hostname,
		m.snap.Uptime.Truncate(time.Second),
		m.snap.TakenAt.Format("15:04:05"),
		probe.Since(m.snap.TakenAt).Truncate(time.Second),
	)) + "\n")
	return b.String()
}

func (m Model) sparkStyle(k probe.KPI) lipgloss.Style {
	return fg(m.st.palette.KPIColor(k.Label))
}

func (m Model) renderKPIs(w int) string {
	if len(m.snap.KPIs) == 0 {
		return ""
	}
	perRow := max(1, min(len(m.snap.KPIs), w/24))
	boxW := max(18, w/perRow-2)
	sparkW := max(6, boxW-4)

	boxes := make([]string, 0, len(m.snap.KPIs))
	for _, k := range m.snap.KPIs {
		change := m.st.ok
		if strings.HasPrefix(k.Change, "-") {
			change = m.st.err
		}
		content := m.st.subtle.Render(trunc(k.Label, sparkW)) + "\n" +
			m.st.title.Render(k.Value) + " " + change.Render(k.Change) + "\n" +
			m.sparkStyle(k).Render(Spark(k.Series, sparkW))
		boxes = append(boxes, m.st.box.Width(boxW).Render(content))
	}

	rows := make([]string, 0, len(boxes)/perRow+1)
	for i := 0; i < len(boxes); i += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:min(i+perRow, len(boxes))]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderUsers(w int) string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Users") + "\n\n")

	colUser, colRole, colState := 14, 10, 9
	colEmail := max(10, w-colUser-colRole-colState-6)
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		padRight("USERNAME", colUser), padRight("EMAIL", colEmail), padRight("ROLE", colRole), "STATUS"))
	b.WriteString(strings.Repeat("─", max(0, min(w, colUser+colEmail+colRole+colState+6))) + "\n")

	for _, u := range m.users {
		state := m.st.ok.Render("active")
		if !u.IsActive {
			state = m.st.subtle.Render("inactive")
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			padRight(trunc(u.Username, colUser), colUser),
			padRight(trunc(u.Email, colEmail), colEmail),
			padRight(trunc(u.Role, colRole), colRole),
			state,
		))
	}
	return b.String()
}

func (m Model) renderIntegrations(w int) string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Integrations") + "\n\n")
	colName := min(30, max(12, w/3))
	for _, it := range m.integr {
		status := m.st.subtle
		if it.Status == "Connected" {
			status = m.st.ok
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", padRight(trunc(it.Name, colName), colName), status.Render(it.Status)))
	}
	return b.String()
}
