package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

const testCSV = `experiment_id,model_type,features_desc,params_summary,cv_metric,holdout_metric,train_time_seconds,notes
exp_001,LightGBM,baseline,LightGBM_hp_set_1,0.81,0.79,42.5,ok
exp_002,XGBoost,with_interactions,XGBoost_hp_set_3,0.90,0.72,310.0,overfit_heavy
exp_003,CatBoost,with_target_encoding,CatBoost_hp_set_2,0.85,0.83,120.0,stable
`

func newTestAgent(t *testing.T) *PortfolioAgent {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiments.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return New(path)
}

func TestHandleMessageHelp(t *testing.T) {
	a := newTestAgent(t)
	for _, msg := range []string{"help", "?", "h"} {
		out, err := a.HandleMessage(msg)
		require.NoError(t, err)
		assert.Contains(t, out, "Commands:")
	}
}

func TestHandleMessageBestIntent(t *testing.T) {
	a := newTestAgent(t)
	for _, msg := range []string{"which is best?", "show me the top run", "who is the winner"} {
		out, err := a.HandleMessage(msg)
		require.NoError(t, err)
		assert.Contains(t, out, "Best CV experiment:")
		assert.Contains(t, out, "exp_002")
	}
}

func TestHandleMessageOverfitIntent(t *testing.T) {
	a := newTestAgent(t)
	out, err := a.HandleMessage("anything overfitting badly?")
	require.NoError(t, err)
	assert.Contains(t, out, "Most overfitted experiment")
	assert.Contains(t, out, "exp_002")
	assert.Contains(t, out, "Tip:")
}

func TestHandleMessageTimeIntent(t *testing.T) {
	a := newTestAgent(t)
	out, err := a.HandleMessage("how slow are these runs")
	require.NoError(t, err)
	assert.Contains(t, out, "Training time overview")
	assert.Contains(t, out, "Per-model mean train time:")
	assert.Contains(t, out, "XGBoost")
}

func TestHandleMessageDefaultsToFullSummary(t *testing.T) {
	a := newTestAgent(t)
	out, err := a.HandleMessage("tell me about the portfolio")
	require.NoError(t, err)
	assert.Contains(t, out, "Total experiments: 3")
}

func TestAnalysisIsCached(t *testing.T) {
	a := newTestAgent(t)
	first, err := a.EnsureAnalysis()
	require.NoError(t, err)
	second, err := a.EnsureAnalysis()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadErrorSurfacesVerbatim(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := a.HandleMessage("best")
	require.ErrorIs(t, err, portfolio.ErrNotFound)
}
