package ictcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbol"
)

func Test_Load_appliesOverridesOnTopOfDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ictiobus.toml")
	contents := `
trace = true

[recovery]
max_attempts = 3
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Trace)
	assert.True(t, cfg.ConflictsFatal) // untouched default
	assert.Equal(t, 3, cfg.Recovery.MaxAttempts)
	assert.True(t, cfg.Recovery.Enabled) // untouched default
}

func Test_Write_thenLoad_roundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ictiobus.toml")

	cfg := Default()
	cfg.Trace = true
	cfg.Recovery.MaxAttempts = 42

	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func Test_ParseOptions_mirrorsRecoveryConfig(t *testing.T) {
	cfg := Default()
	cfg.Recovery.MaxAttempts = 5
	cfg.Recovery.RecentTerminalWindow = 6

	opts := cfg.ParseOptions()
	assert.True(t, opts.Recover)
	assert.Equal(t, 5, opts.MaxRecoveryAttempts)
	assert.Equal(t, 6, opts.RecentWindow)
}

func Test_Tracer_nilWhenTraceOff(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.Tracer())
}

func Test_BuildTables_honorsConflictsFatal(t *testing.T) {
	f := symbol.NewFactory()
	s := f.Mint("S")
	e := f.Mint("E")
	a := f.Mint("A")
	b := f.Mint("B")
	x := f.Mint("x")

	g := grammar.New(s)
	_, err := g.AddProduction(s, e)
	require.NoError(t, err)
	_, err = g.AddProduction(e, a)
	require.NoError(t, err)
	_, err = g.AddProduction(e, b)
	require.NoError(t, err)
	_, err = g.AddProduction(a, x)
	require.NoError(t, err)
	_, err = g.AddProduction(b, x)
	require.NoError(t, err)
	require.NoError(t, g.Finalize())

	cfg := Default()
	_, err = cfg.BuildTables(g)
	require.Error(t, err)

	cfg.ConflictsFatal = false
	tbl, err := cfg.BuildTables(g)
	require.NoError(t, err)
	assert.NotEmpty(t, tbl.Warnings)
}
