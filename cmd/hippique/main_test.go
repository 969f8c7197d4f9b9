package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/service"
)

// writeConfig points the file provider at the datasource fixtures.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dataDir, err := filepath.Abs(filepath.Join("..", "..", "internal", "datasource", "testdata"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app:\n  log_level: error\ndata:\n  source: file\n  dir: " + dataDir + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseOdds(t *testing.T) {
	entries, err := parseOdds([]string{"ALPHA=2.0", " BRAVO = 3,5"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.BetEntry{HorseName: "ALPHA", Odds: 2}, entries[0])
	assert.Equal(t, models.BetEntry{HorseName: "BRAVO", Odds: 3.5}, entries[1])

	for _, bad := range []string{"ALPHA", "=2", "ALPHA=deux", "ALPHA="} {
		_, err := parseOdds([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestStakeCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "--config", cfg, "stake", "--odds", "A=2", "--odds", "B=3", "--budget", "50", "--json")
	require.NoError(t, err)

	var plans []models.DisplayPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, models.StrategyDutch, plans[0].Strategy)
	assert.Equal(t, "50", plans[0].TotalStake.String())
	assert.True(t, plans[0].Profitable)
}

func TestStakeCommandTable(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "--config", cfg, "stake", "--odds", "A=2", "--odds", "B=3", "--budget", "50")
	require.NoError(t, err)

	assert.Contains(t, out, "Strategy: dutch")
	assert.Contains(t, out, "RUNNER")
	assert.Contains(t, out, "profitable: true")
}

func TestStakeCommandRejectsBadInput(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, "--config", cfg, "stake", "--odds", "A=2", "--odds", "B=3", "--strategy", "martingale")
	assert.ErrorIs(t, err, models.ErrUnknownStrategy)

	_, err = run(t, "--config", cfg, "stake", "--odds", "A=2")
	assert.True(t, models.IsValidationError(err))
}

func TestRankCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "--config", cfg, "rank", "--date", "2025-05-18", "--hippodrome", "ParisLongchamp", "--json")
	require.NoError(t, err)

	var rankings []service.CourseRanking
	require.NoError(t, json.Unmarshal([]byte(out), &rankings))
	require.Len(t, rankings, 1)
	assert.Equal(t, "Prix de Saint-Cloud", rankings[0].Course)
	require.Len(t, rankings[0].Participants, 2)
	assert.Equal(t, 1, rankings[0].Participants[0].Position)
}

func TestRankCommandInvalidDate(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, "--config", cfg, "rank", "--date", "18/05/2025", "--hippodrome", "ParisLongchamp")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")
}

func TestExportCommand(t *testing.T) {
	cfg := writeConfig(t, "export:\n  categories: [horse, jockey]\n")
	outDir := t.TempDir()

	out, err := run(t, "--config", cfg, "export", "--output", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(outDir, "ranking-chevaux.json"))
	assert.FileExists(t, filepath.Join(outDir, "ranking-chevaux.json"))
	assert.FileExists(t, filepath.Join(outDir, "ranking-jockeys.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "ranking-eleveurs.json"))
}

func TestPrintRankings(t *testing.T) {
	rankings := []service.CourseRanking{{
		Course:  "Prix Test",
		Context: models.RaceContext{DistanceMeters: 1600},
		Participants: []models.RankedParticipant{
			{
				Position: 1,
				Breakdown: models.ScoreBreakdown{
					Number:    4,
					HorseName: "ALPHA",
					Total:     67.95,
					PerCategory: map[models.Category]models.CategoryScore{
						models.CategoryHorse: {Resolved: true, Rank: 1},
					},
					Corde: &models.CordeAdjustment{Parsed: true, PostPosition: 3, Delta: 1.5},
				},
				Odds:          4.5,
				OddsEstimated: true,
			},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, printRankings(&buf, rankings))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Prix Test (1600m)", lines[0])
	assert.Contains(t, lines[1], "JOCKEY")
	fields := strings.Fields(lines[2])
	assert.Equal(t, []string{"1", "4", "ALPHA", "67.95", "1", "NC", "NC", "NC", "NC", "3", "(+1.50)", "~4.5"}, fields)
}

func TestPrintPlansEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPlans(&buf, []models.DisplayPlan{{Strategy: models.StrategyEV}}))

	assert.Contains(t, buf.String(), "No profitable allocation found")
	assert.NotContains(t, buf.String(), "RUNNER")
}
