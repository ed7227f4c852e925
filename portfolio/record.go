// Package portfolio analyzes a tabular log of machine-learning experiment
// runs: per-model aggregate statistics, best/most-overfit picks, and a
// multi-criteria ranking of runs under named weighting strategies.
package portfolio

// ExperimentRecord is one row of the experiment portfolio. Metric fields use
// the "higher is better" convention; TrainTimeSeconds is non-negative.
type ExperimentRecord struct {
	ExperimentID     string  `json:"experiment_id"`
	ModelType        string  `json:"model_type"`
	FeaturesDesc     string  `json:"features_desc"`
	ParamsSummary    string  `json:"params_summary"`
	CVMetric         float64 `json:"cv_metric"`
	HoldoutMetric    float64 `json:"holdout_metric"`
	TrainTimeSeconds float64 `json:"train_time_seconds"`
	Notes            string  `json:"notes"`
}

// Gap returns the CV/holdout gap (cv_metric - holdout_metric). A positive
// gap means the cross-validation score overstates generalization.
func (r ExperimentRecord) Gap() float64 {
	return r.CVMetric - r.HoldoutMetric
}
