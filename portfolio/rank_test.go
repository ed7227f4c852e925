package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankBalancedScores(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "a", CVMetric: 0.8, HoldoutMetric: 0.78, TrainTimeSeconds: 10},
		{ExperimentID: "b", CVMetric: 0.9, HoldoutMetric: 0.7, TrainTimeSeconds: 100},
	}

	ranked, err := Rank(records, StrategyBalanced)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Gaps are 0.02 and 0.20; all three columns normalize to [0,1], so the
	// first record scores 1.0*0 - 0.5*0 - 0.3*0 = 0 and the second
	// 1.0*1 - 0.5*1 - 0.3*1 = 0.2, which wins.
	assert.Equal(t, "b", ranked[0].Record.ExperimentID)
	assert.Equal(t, "a", ranked[1].Record.ExperimentID)
	assert.InDelta(t, 0.2, ranked[0].Score, 1e-12)
	assert.InDelta(t, 0.0, ranked[1].Score, 1e-12)
}

func TestRankReturnsAllRecordsSorted(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "r1", CVMetric: 0.71, HoldoutMetric: 0.70, TrainTimeSeconds: 120},
		{ExperimentID: "r2", CVMetric: 0.93, HoldoutMetric: 0.75, TrainTimeSeconds: 900},
		{ExperimentID: "r3", CVMetric: 0.85, HoldoutMetric: 0.84, TrainTimeSeconds: 45},
		{ExperimentID: "r4", CVMetric: 0.66, HoldoutMetric: 0.69, TrainTimeSeconds: 10},
	}

	for _, strategy := range []Strategy{StrategyBalanced, StrategyLeaderboard, StrategyStability, StrategySpeed} {
		ranked, err := Rank(records, strategy)
		require.NoError(t, err, "strategy %s", strategy)
		require.Len(t, ranked, len(records), "strategy %s", strategy)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score, "strategy %s not sorted at %d", strategy, i)
		}
	}
}

func TestRankDegenerateColumnContributesZero(t *testing.T) {
	// Identical cv_metric everywhere: the cv component must be exactly zero
	// for every row, never NaN.
	records := []ExperimentRecord{
		{ExperimentID: "a", CVMetric: 0.8, HoldoutMetric: 0.7, TrainTimeSeconds: 5},
		{ExperimentID: "b", CVMetric: 0.8, HoldoutMetric: 0.6, TrainTimeSeconds: 50},
		{ExperimentID: "c", CVMetric: 0.8, HoldoutMetric: 0.5, TrainTimeSeconds: 500},
	}

	ranked, err := Rank(records, StrategyLeaderboard)
	require.NoError(t, err)

	// With w_cv irrelevant, scores are -w_gap*gapNorm - w_time*timeNorm:
	// record "a" has the smallest gap and time, so it wins with score 0.
	assert.Equal(t, "a", ranked[0].Record.ExperimentID)
	assert.Equal(t, 0.0, ranked[0].Score)
	for _, r := range ranked {
		assert.False(t, r.Score != r.Score, "score must not be NaN")
		assert.LessOrEqual(t, r.Score, 0.0)
	}
}

func TestRankSingleRecord(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "only", CVMetric: 0.9, HoldoutMetric: 0.8, TrainTimeSeconds: 30},
	}
	ranked, err := Rank(records, StrategyBalanced)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].Score)
}

func TestRankIdempotent(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "r1", CVMetric: 0.71, HoldoutMetric: 0.70, TrainTimeSeconds: 120},
		{ExperimentID: "r2", CVMetric: 0.93, HoldoutMetric: 0.75, TrainTimeSeconds: 900},
		{ExperimentID: "r3", CVMetric: 0.85, HoldoutMetric: 0.84, TrainTimeSeconds: 45},
	}
	first, err := Rank(records, StrategyStability)
	require.NoError(t, err)
	second, err := Rank(records, StrategyStability)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "r1", CVMetric: 0.9, HoldoutMetric: 0.8, TrainTimeSeconds: 10},
		{ExperimentID: "r2", CVMetric: 0.7, HoldoutMetric: 0.6, TrainTimeSeconds: 20},
	}
	original := make([]ExperimentRecord, len(records))
	copy(original, records)

	_, err := Rank(records, StrategySpeed)
	require.NoError(t, err)
	assert.Equal(t, original, records)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	// Identical rows score identically; stable sort keeps input order.
	records := []ExperimentRecord{
		{ExperimentID: "first", CVMetric: 0.8, HoldoutMetric: 0.7, TrainTimeSeconds: 10},
		{ExperimentID: "second", CVMetric: 0.8, HoldoutMetric: 0.7, TrainTimeSeconds: 10},
	}
	ranked, err := Rank(records, StrategyBalanced)
	require.NoError(t, err)
	assert.Equal(t, "first", ranked[0].Record.ExperimentID)
	assert.Equal(t, "second", ranked[1].Record.ExperimentID)
}

func TestRankEmptyInput(t *testing.T) {
	_, err := Rank(nil, StrategyBalanced)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankUnknownStrategy(t *testing.T) {
	records := []ExperimentRecord{
		{ExperimentID: "a", CVMetric: 0.8, HoldoutMetric: 0.7, TrainTimeSeconds: 10},
	}
	_, err := Rank(records, Strategy("chaotic"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "chaotic")
}
