package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	{
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANACREON_THEME_FILE", filepath.Join(t.TempDir(), "theme.yaml"))

	cfgFile, demo, verbose = "", false, false
	renderOut, renderRange, renderKPI, renderTheme, renderLive = "-", "7d", 0, "light", false
	renderWidth, renderHeight = 0, 0
	expBusiness, expAmount, expCategory, expDescription = 0, 0, "", ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "anacreon dev\n", out)
}

func TestHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "render", "settings", "expense", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestRenderDonutToStdout(t *testing.T) {
	out, err := run(t, "render", "donut")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "Completed")
	assert.Equal(t, 3, strings.Count(out, "stroke-dasharray"))
}

func TestRenderBarToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bar.svg")
	_, err := run(t, "render", "bar", "-o", path, "--theme", "dark")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 24, strings.Count(string(b), "<rect "))
	assert.Contains(t, string(b), "#86efac")
}

func TestRenderSparkline(t *testing.T) {
	out, err := run(t, "render", "sparkline", "--kpi", "1", "--width", "200")
	require.NoError(t, err)
	assert.Contains(t, out, `width="200"`)
}

func TestRenderSparklineKPIColors(t *testing.T) {
	out, err := run(t, "render", "sparkline", "--kpi", "0", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "#86efac")
	assert.NotContains(t, out, "#2563eb")

	out, err = run(t, "render", "sparkline", "--kpi", "3", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "#fca5a5")

	out, err = run(t, "render", "sparkline", "--kpi", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#64748b")
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestRenderReportsCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })

	fc := &failingCloser{closeErr: errors.New("disk full")}
	createFile = func(string) (io.WriteCloser, error) { return fc, nil }

	_, err := run(t, "render", "donut", "-o", "chart.svg")
	require.Error(t, err)
	assert.ErrorIs(t, err, fc.closeErr)
	assert.Contains(t, err.Error(), "closing chart.svg")
	assert.True(t, strings.HasPrefix(fc.String(), "<svg"))

	// a render failure wins over the close error
	_, err = run(t, "render", "sparkline", "--kpi", "9", "-o", "chart.svg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fc.closeErr)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := run(t, "render", "pie")
	assert.Error(t, err)

	_, err = run(t, "render", "sparkline", "--kpi", "9")
	assert.ErrorContains(t, err, "no kpi 9")

	_, err = run(t, "render", "bar", "--range", "1y")
	assert.Error(t, err)

	_, err = run(t, "render", "bar", "--theme", "sepia")
	assert.Error(t, err)
}

func TestSettingsList(t *testing.T) {
	out, err := run(t, "settings", "list", "businesses")
	require.NoError(t, err)
	assert.Contains(t, out, "Main Shop")
	assert.Contains(t, out, "inactive")

	out, err = run(t, "settings", "list", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Miscellaneous")

	out, err = run(t, "settings", "list", "integrations")
	require.NoError(t, err)
	assert.Contains(t, out, "Not configured")

	_, err = run(t, "settings", "list", "orders")
	assert.Error(t, err)
}

func TestExpenseAdd(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/expenditure/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"business":1,"amount":"1250.00","description":"june","category":"Rent","spent_at":"2026-06-01T00:00:00Z"}`))
	}))
	defer srv.Close()
	t.Setenv("ANACREON_API_BASE_URL", srv.URL)

	out, err := run(t, "expense", "add", "--business", "1", "--amount", "1250", "--category", "Rent", "--description", "june")
	require.NoError(t, err)
	assert.Contains(t, out, "expenditure #7: $1,250 Rent")
	assert.Equal(t, "1250.00", got["amount"])
	assert.Equal(t, "Rent", got["category"])
}

func TestExpenseAddValidates(t *testing.T) {
	_, err := run(t, "expense", "add", "--business", "1")
	assert.ErrorContains(t, err, "--amount")

	_, err = run(t, "expense", "add", "--amount", "5")
	assert.ErrorContains(t, err, "--business")
}
