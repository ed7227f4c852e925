package portfolio

import (
	"fmt"
	"sort"
)

// Strategy names a weighting policy over (cv, gap, time) used to rank
// experiments for different objectives.
type Strategy string

const (
	// StrategyBalanced is the default middle ground.
	StrategyBalanced Strategy = "balanced"
	// StrategyLeaderboard maximizes raw score and tolerates overfit and
	// slow training.
	StrategyLeaderboard Strategy = "leaderboard"
	// StrategyStability penalizes the CV/holdout gap heavily.
	StrategyStability Strategy = "stability"
	// StrategySpeed penalizes slow training heavily.
	StrategySpeed Strategy = "speed"
)

// weights returns the (w_cv, w_gap, w_time) tuple for a strategy. Unknown
// strategies are a hard error, never a silent fallback.
func (s Strategy) weights() (wCV, wGap, wTime float64, err error) {
	switch s {
	case StrategyLeaderboard:
		return 1.0, 0.3, 0.1, nil
	case StrategyStability:
		return 0.8, 0.7, 0.1, nil
	case StrategySpeed:
		return 0.6, 0.2, 0.7, nil
	case StrategyBalanced:
		return 1.0, 0.5, 0.3, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: unknown ranking strategy %q", ErrInvalidInput, string(s))
	}
}

// RankedExperiment pairs a record with its composite score under the chosen
// strategy.
type RankedExperiment struct {
	Record ExperimentRecord `json:"record"`
	Score  float64          `json:"rank_score"`
}

// Rank scores every record under the given strategy and returns a new slice
// sorted by score, best first. Each of cv_metric, gap, and train time is
// min-max normalized to [0,1] across the input; the composite score rewards
// normalized CV and penalizes normalized gap and time:
//
//	score = w_cv*cvNorm - w_gap*gapNorm - w_time*timeNorm
//
// Ties keep input order. The caller's slice is never mutated. An empty
// record set or an unknown strategy is an error.
func Rank(records []ExperimentRecord, strategy Strategy) ([]RankedExperiment, error) {
	wCV, wGap, wTime, err := strategy.weights()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no experiment records to rank", ErrInvalidInput)
	}

	cvs := make([]float64, len(records))
	gaps := make([]float64, len(records))
	times := make([]float64, len(records))
	for i, r := range records {
		cvs[i] = r.CVMetric
		gaps[i] = r.Gap()
		times[i] = r.TrainTimeSeconds
	}

	cvNorm := minMaxNormalize(cvs)
	gapNorm := minMaxNormalize(gaps)
	timeNorm := minMaxNormalize(times)

	ranked := make([]RankedExperiment, len(records))
	for i, r := range records {
		ranked[i] = RankedExperiment{
			Record: r,
			Score:  wCV*cvNorm[i] - wGap*gapNorm[i] - wTime*timeNorm[i],
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// minMaxNormalize maps values onto [0,1] via (x-min)/(max-min). When every
// value is identical (including a single-element input) the whole column
// normalizes to exactly 0.0; that column then contributes nothing to the
// composite score.
func minMaxNormalize(values []float64) []float64 {
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	out := make([]float64, len(values))
	if maxV == minV {
		return out
	}
	span := maxV - minV
	for i, v := range values {
		out[i] = (v - minV) / span
	}
	return out
}
