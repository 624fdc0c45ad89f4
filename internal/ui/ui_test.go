package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/settings"
	"github.com/nexusriot/anacreon/internal/theme"
)

func TestSparkRamp(t *testing.T) {
	assert.Equal(t, "▁▂▃▄▅▆▇█", Spark([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8))
}

func TestSparkConstantAndPadding(t *testing.T) {
	assert.Equal(t, "▅▅▅  ", Spark([]float64{5, 5, 5}, 5))
	assert.Equal(t, "    ", Spark(nil, 4))
	assert.Equal(t, "", Spark([]float64{1}, 0))
}

func TestSparkKeepsTail(t *testing.T) {
	assert.Equal(t, "▁█", Spark([]float64{9, 9, 1, 2}, 2))
}

func TestBarChartRaster(t *testing.T) {
	lines := BarChart([]string{"A", "B"}, []chart.Series{{Name: "s", Values: []float64{1, 2}}}, 9, 2)
	require.Len(t, lines, 3)
	assert.Equal(t, "     ████", stripStyles(lines[0]))
	assert.Equal(t, "████ ████", stripStyles(lines[1]))
	assert.Equal(t, "  A    B ", lines[2])
}

func TestBarChartNoSpace(t *testing.T) {
	assert.Nil(t, BarChart([]string{"A"}, nil, 0, 4))
	assert.Nil(t, BarChart([]string{"A"}, nil, 10, 0))
}

func TestDonutBarSplitsRow(t *testing.T) {
	g := chart.Donut([]chart.Slice{{Label: "a", Value: 1}, {Label: "b", Value: 1}}, 140, 14)
	assert.Equal(t, strings.Repeat("█", 10), stripStyles(DonutBar(g, 10, "none")))

	empty := chart.Donut([]chart.Slice{{Label: "a", Value: 0}}, 140, 14)
	assert.Equal(t, "none", DonutBar(empty, 10, "none"))
}

func TestDonutLegend(t *testing.T) {
	g := chart.Donut([]chart.Slice{
		{Label: "Completed", Value: 62, Color: "#10b981"},
		{Label: "Pending", Value: 18, Color: "#a3a3a3"},
	}, 140, 14)
	lines := DonutLegend(g)
	require.Len(t, lines, 2)
	assert.Contains(t, stripStyles(lines[0]), "Completed")
	assert.Contains(t, stripStyles(lines[0]), "77.5%")
	assert.Contains(t, stripStyles(lines[1]), "22.5%")
}

func TestTruncAndPad(t *testing.T) {
	assert.Equal(t, "abc", trunc("abc", 3))
	assert.Equal(t, "ab…", trunc("abcd", 3))
	assert.Equal(t, "", trunc("abcd", 0))
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
}

func TestClipWidthKeepsEscapes(t *testing.T) {
	styled := "\x1b[1mhello\x1b[0m world"
	assert.Equal(t, "\x1b[1mhel", clipWidth(styled, 3))
	assert.Equal(t, "\x1b[1mhello\x1b[0m w", clipWidth(styled, 7))
	assert.Equal(t, "", clipWidth(styled, 0))
	assert.Equal(t, "日本", clipWidth("日本語", 5), "wide runes never split")
}

func TestStripStyles(t *testing.T) {
	assert.Equal(t, "hello world", stripStyles("\x1b[1;32mhello\x1b[0m \x1b7world"))
	assert.Equal(t, "plain", stripStyles("plain"))
	assert.Equal(t, "cut", stripStyles("cut\x1b[3"))
}

func TestClipLines(t *testing.T) {
	assert.Equal(t, "abc\nde\n", clipLines("abcdef\nde\n", 3))
	assert.Equal(t, "a b", clipLine("a\nb\r\nc", 3))
}

func TestFitTabs(t *testing.T) {
	tabs := []string{"one", "two", "three"}
	assert.Equal(t, "one two three", fitTabs(tabs, 20, "…"))
	assert.Equal(t, "one two …", fitTabs(tabs, 10, "…"))
	assert.Equal(t, "one two", fitTabs(tabs, 8, "…"), "no room for the marker")
	assert.Equal(t, "…", fitTabs(tabs, 2, "…"))
	assert.Equal(t, "", fitTabs(nil, 10, "…"))
}

func TestFoldMatching(t *testing.T) {
	assert.True(t, matchFold("Office Rent", "rent"))
	assert.True(t, matchFold("anything", ""))
	assert.False(t, matchFold("Utilities", "rent"))

	hl := lipgloss.NewStyle()
	assert.Equal(t, "Rent and rent", stripStyles(highlightFold("Rent and rent", "RENT", hl)))
	assert.Equal(t, -1, indexRunes([]rune("ab"), []rune("abc")))
	assert.Equal(t, 2, indexRunes([]rune("abcd"), []rune("cd")))
}

func newTestModel(t *testing.T) (Model, *theme.Provider, settings.Stores) {
	t.Helper()
	prov := theme.NewProvider(&theme.MemoryStorage{}, nil)
	stores := settings.NewSeededStores()
	m := NewModel(Options{
		Sampler: probe.NewDemoSampler(),
		Stores:  stores,
		Theme:   prov,
		Range:   probe.Range7d,
	})
	t.Cleanup(m.Close)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	return m, prov, stores
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelRendersSnapshot(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Collecting data")

	snap, err := probe.NewDemoSampler().Sample(context.Background(), probe.Range7d)
	require.NoError(t, err)
	m = step(t, m, snapMsg(snap))

	view := stripStyles(m.overviewText)
	assert.Contains(t, view, "Revenue")
	assert.Contains(t, view, "$12,400")
	assert.Contains(t, view, "Orders by Status")
	assert.Contains(t, view, "Bread")
}

func TestModelIgnoresStaleRange(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(keys("3"))
	m = next.(Model)
	assert.Equal(t, probe.Range30d, m.rng)
	assert.NotNil(t, cmd)

	stale, err := probe.NewDemoSampler().Sample(context.Background(), probe.Range7d)
	require.NoError(t, err)
	m = step(t, m, snapMsg(stale))
	assert.True(t, m.snap.TakenAt.IsZero())
}

func TestModelTabsWrap(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabIntegrations, m.activeTab)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabOverview, m.activeTab)
}

func TestModelToggleTheme(t *testing.T) {
	m, prov, _ := newTestModel(t)
	m = step(t, m, keys("t"))
	assert.Equal(t, theme.Dark, prov.Get())
	assert.Equal(t, theme.PaletteFor(theme.Dark), m.st.palette)
}

func TestModelKPISparkColors(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = step(t, m, keys("t"))
	pal := theme.PaletteFor(theme.Dark)

	for label, want := range map[string]string{
		"Revenue":        pal.Revenue,
		"Expenditures":   pal.Expense,
		"Orders":         pal.Neutral,
		"Items in Stock": pal.Neutral,
	} {
		got := m.sparkStyle(probe.KPI{Label: label}).GetForeground()
		assert.Equal(t, lipgloss.Color(want), got, label)
	}
}

func TestModelFollowsExternalThemeChange(t *testing.T) {
	m, prov, _ := newTestModel(t)
	wait := m.waitThemeCmd()
	require.NoError(t, prov.Set(theme.Dark))

	msg := wait()
	assert.Equal(t, themeMsg(theme.Dark), msg)
	m = step(t, m, msg)
	assert.Equal(t, theme.PaletteFor(theme.Dark), m.st.palette)
}

func TestBusinessPanelCreate(t *testing.T) {
	m, prov, stores := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, tabBusinesses, m.activeTab)

	m = step(t, m, keys("n"))
	require.True(t, m.capturing())

	// "t" is text while the form is open, not a theme toggle
	m = step(t, m, keys("Bakery t"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.capturing())
	assert.Equal(t, theme.Light, prov.Get())

	list := stores.Businesses.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "Bakery t", list[0].Name)
	assert.Equal(t, 4, list[0].ID)
	assert.True(t, list[0].IsActive)
	assert.Equal(t, 0, m.businesses.cursor)
}

func TestBusinessPanelToggleAndDelete(t *testing.T) {
	m, _, stores := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	first := stores.Businesses.List()[0]
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	got, err := stores.Businesses.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, !first.IsActive, got.IsActive)

	// anything but y cancels
	m = step(t, m, keys("d"))
	m = step(t, m, keys("n"))
	assert.Len(t, stores.Businesses.List(), 3)

	m = step(t, m, keys("d"))
	m = step(t, m, keys("y"))
	assert.Len(t, stores.Businesses.List(), 2)
	_, err = stores.Businesses.Get(first.ID)
	assert.ErrorIs(t, err, settings.ErrNotFound)
	assert.Contains(t, m.businesses.status, "deleted")
}

func TestCategoryPanelSearch(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, tabCategories, m.activeTab)

	m = step(t, m, keys("/"))
	m = step(t, m, keys("rent"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	vis := m.categories.visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "Rent", vis[0].Name)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Len(t, m.categories.visible(), 4)
}

func TestCategoryPanelEdit(t *testing.T) {
	m, _, stores := newTestModel(t)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	target := stores.Categories.List()[0]
	m = step(t, m, keys("e"))
	require.Equal(t, target.ID, m.categories.editID)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = step(t, m, keys("Office rent"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got, err := stores.Categories.Get(target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office rent", got.Name)
	assert.Equal(t, target.Description, got.Description)
}
