package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/projectconfig"
	"github.com/spboyer/leadval/internal/store"
)

func TestRoot_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"report", "serve", "import", "rate", "validate", "analyses"} {
		assert.Contains(t, names, want)
	}
}

func TestRoot_TenantsAreIsolated(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("--tenant", "acme", "import", env.writeBundle(t, sampleBundle()))
	require.NoError(t, err)

	out, _, err := env.run("--tenant", "initech", "report", "--format", "json")
	require.NoError(t, err)
	var report models.ValidationMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.SampleInfo.TotalAnalyses)

	out, _, err = env.run("--tenant", "acme", "report", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.SampleInfo.TotalAnalyses)
}

func TestRoot_TenantFromConfigAndEnv(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, ".leadval.yaml", "tenant: acme\n")

	out, _, err := env.run("import", env.writeBundle(t, sampleBundle()))
	require.NoError(t, err)
	assert.Contains(t, out, `into tenant "acme"`)

	t.Setenv(projectconfig.EnvTenant, "globex")
	out, _, err = env.run("import", "--dry-run", env.writeBundle(t, sampleBundle()))
	require.NoError(t, err)
	assert.Contains(t, out, "Valid:")

	out, _, err = env.run("analyses")
	require.NoError(t, err)
	assert.Equal(t, "No analyses to validate.\n", out)
}

func TestRoot_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, ".leadval.yaml", "tenant: [unclosed\n")

	_, _, err := env.run("report")
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))
}

func TestRoot_DebugLogsStorePath(t *testing.T) {
	env := newCLIEnv(t)
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, _, err := env.run("--debug", "--tenant", "acme", "analyses")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "msg=\"using store\" path="+env.db+" tenant=acme")
}

func TestAnalyses_Table(t *testing.T) {
	env := newCLIEnv(t)
	env.importSample(t)

	out, _, err := env.run("analyses")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header plus three non-archived analyses")
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.NotContains(t, out, analysisAr)
	assert.Contains(t, out, "Globex")
	assert.Contains(t, out, "hot")
}

func TestAnalyses_JSON(t *testing.T) {
	env := newCLIEnv(t)
	env.importSample(t)

	out, _, err := env.run("analyses", "--format", "json")
	require.NoError(t, err)

	var got []models.AnalysisForValidation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	for _, a := range got {
		assert.Len(t, a.ExpertRatings, 1, a.ID)
		assert.Equal(t, "Globex", a.Company.Name)
	}
}

func TestRate_UnknownAnalysis(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("rate", analysisA)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAnalysisNotFound)
}

func TestRate_RequiresAnalysisID(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("rate")
	assert.Error(t, err)
}

func TestServe_InvalidPortEnv(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv(projectconfig.EnvServerPort, "eighty")

	_, _, err := env.run("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
