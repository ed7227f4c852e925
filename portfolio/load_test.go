package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiments.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validCSV = `experiment_id,model_type,features_desc,params_summary,cv_metric,holdout_metric,train_time_seconds,notes
exp_001,LightGBM,baseline,LightGBM_hp_set_1,0.81,0.79,42.5,ok
exp_002,XGBoost,with_interactions,XGBoost_hp_set_3,0.90,0.72,310.0,overfit_heavy
`

func TestLoadExperiments(t *testing.T) {
	path := writeCSV(t, validCSV)

	records, err := LoadExperiments(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "exp_001", records[0].ExperimentID)
	assert.Equal(t, "LightGBM", records[0].ModelType)
	assert.Equal(t, 0.81, records[0].CVMetric)
	assert.Equal(t, 0.79, records[0].HoldoutMetric)
	assert.Equal(t, 42.5, records[0].TrainTimeSeconds)
	assert.Equal(t, "overfit_heavy", records[1].Notes)
	assert.InDelta(t, 0.18, records[1].Gap(), 1e-12)
}

func TestLoadExperimentsShuffledColumnsAndExtras(t *testing.T) {
	path := writeCSV(t, `notes,cv_metric,experiment_id,extra_col,model_type,holdout_metric,train_time_seconds,features_desc,params_summary
ok,0.8,exp_001,ignored,LGBM,0.78,10,base,p1
`)
	records, err := LoadExperiments(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "exp_001", records[0].ExperimentID)
	assert.Equal(t, 0.78, records[0].HoldoutMetric)
}

func TestLoadExperimentsMissingFile(t *testing.T) {
	_, err := LoadExperiments(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadExperimentsMissingColumn(t *testing.T) {
	path := writeCSV(t, `experiment_id,model_type,features_desc,params_summary,holdout_metric,train_time_seconds,notes
exp_001,LGBM,base,p1,0.79,42.5,ok
`)
	_, err := LoadExperiments(path)
	require.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "cv_metric")
}

func TestLoadExperimentsNonNumericMetric(t *testing.T) {
	path := writeCSV(t, `experiment_id,model_type,features_desc,params_summary,cv_metric,holdout_metric,train_time_seconds,notes
exp_001,LGBM,base,p1,not-a-number,0.79,42.5,ok
`)
	_, err := LoadExperiments(path)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "cv_metric")
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadExperimentsNegativeTrainTime(t *testing.T) {
	path := writeCSV(t, `experiment_id,model_type,features_desc,params_summary,cv_metric,holdout_metric,train_time_seconds,notes
exp_001,LGBM,base,p1,0.8,0.79,-5,ok
`)
	_, err := LoadExperiments(path)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadExperimentsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := LoadExperiments(path)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunAnalysis(t *testing.T) {
	path := writeCSV(t, validCSV)

	result, err := RunAnalysis(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.NExperiments)
	assert.Contains(t, result.TextReport, "Total experiments: 2")
	assert.True(t, filepath.IsAbs(result.ExperimentsPath))
}

func TestRunAnalysisPropagatesLoadErrors(t *testing.T) {
	_, err := RunAnalysis(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrNotFound)
}
