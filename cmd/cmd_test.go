package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/progress"
	"github.com/theirongolddev/finquest/internal/projection"
	"github.com/theirongolddev/finquest/internal/quest"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("FINQUEST_DATA_DIR", "")
	t.Setenv("FINQUEST_CURRENCY", "")
	t.Setenv("FINQUEST_LOG_LEVEL", "")
	return filepath.Join(dir, "state")
}

func run(t *testing.T, dataDir string, args ...string) {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir, "--quiet", "--no-color"}, args...))
	require.NoError(t, rootCmd.Execute(), args)
}

func reopen(t *testing.T, dataDir string) *appContext {
	t.Helper()
	flagDataDir = dataDir
	app, err := openApp()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })
	return app
}

func TestPlanAnswerAndQuestCommands(t *testing.T) {
	dataDir := isolate(t)

	run(t, dataDir, "plan", "new", "saving", "--name", "Rainy day")
	run(t, dataDir, "answer", catalog.MonthlyIncome, "40,000")
	run(t, dataDir, "answer", catalog.MonthlyExpenses, "25000")
	run(t, dataDir, "snapshot")
	run(t, dataDir, "quests", "done", quest.SaveWeek)
	run(t, dataDir, "quests", "done", quest.SaveWeek)

	app := reopen(t, dataDir)
	e := app.engine
	p, ok := e.ActivePlan()
	require.True(t, ok)
	assert.Equal(t, "Rainy day", p.Name)
	assert.Len(t, p.Answers, 2)
	require.NotNil(t, p.Snapshot)
	assert.Equal(t, int64(15000), p.Snapshot.MonthlySavings)

	week := quest.WeekKey(e.Now())
	assert.Equal(t, model.QuestDone, e.QuestStatus(quest.SaveWeek, week))
	want := 2*progress.Points(progress.CompleteQuestion) +
		progress.Points(progress.ViewSnapshot) +
		progress.Points(progress.CompleteQuest)
	assert.Equal(t, want, e.XP(), "a done quest is not rewarded twice")
}

func TestViewsAwardOncePerDay(t *testing.T) {
	dataDir := isolate(t)

	run(t, dataDir, "plan", "new", "saving")
	run(t, dataDir, "answer", catalog.MonthlyIncome, "40000")
	for range 3 {
		run(t, dataDir, "snapshot")
		run(t, dataDir, "whatif", "--extra", "2000")
	}

	app := reopen(t, dataDir)
	want := progress.Points(progress.CompleteQuestion) + 2*progress.Points(progress.ViewSnapshot)
	assert.Equal(t, want, app.engine.XP())
	require.NotNil(t, app.engine.Snapshot())
	assert.Equal(t, int64(40000), app.engine.Snapshot().MonthlyIncome, "whatif must not touch the plan")
}

func TestRenderWhatIf(t *testing.T) {
	adj := projection.DefaultAdjustments(nil)

	out := renderWhatIf(adj, projection.WhatIf(nil, adj), "$")
	assert.Contains(t, out, "$30,000")
	assert.Contains(t, out, "No plan snapshot")

	ahead := renderWhatIf(adj, projection.WhatIfResult{BaselineFund: 1000, DiffMonths: 12}, "$")
	assert.Contains(t, ahead, "12 months ahead")
	behind := renderWhatIf(adj, projection.WhatIfResult{BaselineFund: 1000, DiffMonths: -3}, "$")
	assert.Contains(t, behind, "3 months behind")
	assert.False(t, strings.Contains(behind, "-3"))
}

func TestAnswerRejectsInvalidInput(t *testing.T) {
	dataDir := isolate(t)
	run(t, dataDir, "plan", "new", "goal")

	rootCmd.SetArgs([]string{"--data-dir", dataDir, "--quiet", "answer", catalog.MonthlyIncome, "plenty"})
	assert.Error(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"--data-dir", dataDir, "--quiet", "answer", catalog.MonthlyIncome, "5"})
	assert.Error(t, rootCmd.Execute())

	app := reopen(t, dataDir)
	assert.Empty(t, app.engine.Answers())
}

func TestResolvePlanID(t *testing.T) {
	plans := []model.Plan{{ID: "a1b2c3d4-0000"}, {ID: "a1b2ffff-0000"}, {ID: "9f00aa"}}

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"9f00aa", "9f00aa", false},
		{"9f", "9f00aa", false},
		{"a1b2c", "a1b2c3d4-0000", false},
		{"a1b2", "", true},
		{"zz", "", true},
	}
	for _, tt := range tests {
		got, err := resolvePlanID(plans, tt.arg)
		if tt.wantErr {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextSpan(t *testing.T) {
	assert.Equal(t, 200, nextSpan(50, progress.RankFor(50)))
	assert.Equal(t, 300, nextSpan(250, progress.RankFor(250)))
	top := progress.Ranks[len(progress.Ranks)-1]
	assert.Equal(t, 1000, nextSpan(top.MinXP+1000, top))
}
