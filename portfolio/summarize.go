package portfolio

import "fmt"

// TimeStats describes the training-time distribution across the portfolio,
// in seconds.
type TimeStats struct {
	Min  float64 `json:"min_train_time"`
	Mean float64 `json:"mean_train_time"`
	Max  float64 `json:"max_train_time"`
}

// FamilyStats aggregates the runs of a single model family.
type FamilyStats struct {
	NRuns         int     `json:"n_runs"`
	BestCV        float64 `json:"best_cv"`
	MeanCV        float64 `json:"mean_cv"`
	MeanGap       float64 `json:"mean_gap"`
	MeanTrainTime float64 `json:"mean_train_time"`
}

// Summary holds the descriptive statistics of one experiment portfolio.
type Summary struct {
	NExperiments int                    `json:"n_experiments"`
	ModelCounts  map[string]int         `json:"model_counts"`
	BestCV       ExperimentRecord       `json:"best_cv_experiment"`
	WorstGap     ExperimentRecord       `json:"worst_gap_experiment"`
	TimeStats    TimeStats              `json:"time_stats"`
	FamilyStats  map[string]FamilyStats `json:"model_family_stats"`
}

// Summarize computes descriptive statistics over the full record set: counts
// per model family, the best-CV and most-overfit runs, and the training-time
// distribution. Ties on best/worst go to the earliest record in input order.
// An empty record set is an error; the input is never mutated.
func Summarize(records []ExperimentRecord) (*Summary, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no experiment records to summarize", ErrInvalidInput)
	}

	s := &Summary{
		NExperiments: len(records),
		ModelCounts:  make(map[string]int),
		BestCV:       records[0],
		WorstGap:     records[0],
		TimeStats: TimeStats{
			Min: records[0].TrainTimeSeconds,
			Max: records[0].TrainTimeSeconds,
		},
	}

	var timeSum float64
	for _, r := range records {
		s.ModelCounts[r.ModelType]++

		// Strict > keeps the earliest record on ties.
		if r.CVMetric > s.BestCV.CVMetric {
			s.BestCV = r
		}
		if r.Gap() > s.WorstGap.Gap() {
			s.WorstGap = r
		}

		timeSum += r.TrainTimeSeconds
		if r.TrainTimeSeconds < s.TimeStats.Min {
			s.TimeStats.Min = r.TrainTimeSeconds
		}
		if r.TrainTimeSeconds > s.TimeStats.Max {
			s.TimeStats.Max = r.TrainTimeSeconds
		}
	}
	s.TimeStats.Mean = timeSum / float64(len(records))

	s.FamilyStats = computeFamilyStats(records)
	return s, nil
}

// computeFamilyStats groups records by model type and aggregates each group.
func computeFamilyStats(records []ExperimentRecord) map[string]FamilyStats {
	byModel := map[string][]ExperimentRecord{}
	for _, r := range records {
		byModel[r.ModelType] = append(byModel[r.ModelType], r)
	}

	out := make(map[string]FamilyStats, len(byModel))
	for model, group := range byModel {
		fs := FamilyStats{
			NRuns:  len(group),
			BestCV: group[0].CVMetric,
		}
		var cvSum, gapSum, timeSum float64
		for _, r := range group {
			if r.CVMetric > fs.BestCV {
				fs.BestCV = r.CVMetric
			}
			cvSum += r.CVMetric
			gapSum += r.Gap()
			timeSum += r.TrainTimeSeconds
		}
		n := float64(len(group))
		fs.MeanCV = cvSum / n
		fs.MeanGap = gapSum / n
		fs.MeanTrainTime = timeSum / n
		out[model] = fs
	}
	return out
}
