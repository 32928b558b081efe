package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econdash/internal/core"
	"econdash/internal/dashboard"
)

func sampleIndicators() []core.Indicator {
	return []core.Indicator{
		{Title: "Sweden GDP Annual Growth Rate", Category: "GDP Annual Growth Rate", CategoryGroup: "GDP", LatestValue: 1.2, PreviousValue: core.Float(0.8), Unit: "percent", LatestValueDate: "2024-03-31T00:00:00", Source: "Statistics Sweden"},
		{Title: "Sweden Unemployment Rate", Category: "Unemployment Rate", CategoryGroup: "Labour", LatestValue: 8.2, PreviousValue: core.Float(8.5), Unit: "percent", LatestValueDate: "2024-02-29T00:00:00", Source: "Statistics Sweden"},
		{Title: "Sweden Housing Index", Category: "Housing Index", CategoryGroup: "Housing", LatestValue: 812.3, Unit: "points", LatestValueDate: "2024-01-31T00:00:00", Source: "Statistics Sweden"},
	}
}

func TestRenderView(t *testing.T) {
	var buf bytes.Buffer
	view := dashboard.Build("sweden", sampleIndicators(), dashboard.Filter{})

	require.NoError(t, renderView(&buf, "Sweden", view))

	out := buf.String()
	assert.Contains(t, out, "Sweden Economic Dashboard")
	assert.Contains(t, out, "GDP Growth")
	assert.Contains(t, out, "1.2% ↑")
	assert.Contains(t, out, "Indicators (3 of 3 matching)")
	assert.Contains(t, out, "812.3 points")
	assert.Contains(t, out, "Labour Indicators")
	assert.Contains(t, out, "↓ 3.5%")
	// Not a terminal, so no escape sequences.
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderViewEmptyFilter(t *testing.T) {
	var buf bytes.Buffer
	view := dashboard.Build("sweden", sampleIndicators(), dashboard.Filter{Category: "Money"})

	require.NoError(t, renderView(&buf, "Sweden", view))

	assert.Contains(t, buf.String(), "No indicators match the current filter.")
}

func TestIndicatorsCommandMultibyteCountry(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"Title":"Austria Inflation Rate","Category":"Inflation Rate","CategoryGroup":"Prices","LatestValue":2.4,"PreviousValue":2.9,"Unit":"percent"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "österreich.json"), []byte(payload), 0o644))

	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("FIXTURES_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"indicators", "österreich"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Österreich Economic Dashboard")
	assert.NotContains(t, out.String(), "\uFFFD")
}

func TestIndicatorsCommandWithMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"Title":"Sweden Unemployment Rate","Category":"Unemployment Rate","CategoryGroup":"Labour","LatestValue":8.2,"PreviousValue":8.5,"Unit":"percent"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sweden.json"), []byte(payload), 0o644))

	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("FIXTURES_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"indicators", "sweden", "--json"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, payload, strings.TrimSpace(out.String()))

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"indicators", "sweden", "-q", "unemployment"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Sweden Unemployment Rate")
	assert.Contains(t, out.String(), "Indicators (1 of 1 matching)")

	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"indicators", "norway"})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "econdash dev\n", out.String())
}
