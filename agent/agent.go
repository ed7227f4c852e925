// Package agent implements a rule-based chat responder over the experiment
// portfolio. It maps keyword intents (best, overfit, time) onto portfolio
// statistics and renders focused text answers.
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

// PortfolioAgent answers portfolio questions from a single cached analysis
// pass. The CSV is loaded once, on the first message that needs it.
type PortfolioAgent struct {
	experimentsPath string
	lastResult      *portfolio.AnalysisResult
}

// New returns an agent bound to an experiments CSV path. Nothing is loaded
// until the first query.
func New(experimentsPath string) *PortfolioAgent {
	return &PortfolioAgent{experimentsPath: experimentsPath}
}

// EnsureAnalysis runs the portfolio analysis once and caches the result so
// repeated queries do not re-read the CSV.
func (a *PortfolioAgent) EnsureAnalysis() (*portfolio.AnalysisResult, error) {
	if a.lastResult == nil {
		result, err := portfolio.RunAnalysis(a.experimentsPath)
		if err != nil {
			return nil, err
		}
		a.lastResult = result
	}
	return a.lastResult, nil
}

// HelpText lists the intents the agent understands.
func (a *PortfolioAgent) HelpText() string {
	return strings.Join([]string{
		"Commands:",
		"  - full / summary   -> full report",
		"  - best             -> best CV experiment",
		"  - overfit          -> where CV >> holdout",
		"  - time / speed     -> training time insights",
		"  - help             -> show this message",
		"  - exit / quit      -> leave the agent",
	}, "\n")
}

// HandleMessage routes a free-text message to an intent handler. Unmatched
// messages fall through to the full summary.
func (a *PortfolioAgent) HandleMessage(message string) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))

	switch msg {
	case "help", "?", "h":
		return a.HelpText(), nil
	}
	if containsAny(msg, "best", "top", "winner") {
		return a.BestExperiment()
	}
	if containsAny(msg, "overfit", "gap") {
		return a.Overfitting()
	}
	if containsAny(msg, "time", "speed", "fast", "slow") {
		return a.TimeStats()
	}
	return a.FullSummary()
}

// FullSummary returns the complete text report.
func (a *PortfolioAgent) FullSummary() (string, error) {
	result, err := a.EnsureAnalysis()
	if err != nil {
		return "", err
	}
	return result.TextReport, nil
}

// BestExperiment returns a focused card for the best-CV run.
func (a *PortfolioAgent) BestExperiment() (string, error) {
	result, err := a.EnsureAnalysis()
	if err != nil {
		return "", err
	}
	best := result.Summary.BestCV
	return strings.Join([]string{
		"Best CV experiment:",
		fmt.Sprintf("  ID: %s", best.ExperimentID),
		fmt.Sprintf("  Model: %s", best.ModelType),
		fmt.Sprintf("  CV metric: %.4f", best.CVMetric),
		fmt.Sprintf("  Holdout metric: %.4f", best.HoldoutMetric),
		fmt.Sprintf("  Gap: %.4f", best.Gap()),
		fmt.Sprintf("  Features: %s", best.FeaturesDesc),
		fmt.Sprintf("  Params: %s", best.ParamsSummary),
	}, "\n"), nil
}

// Overfitting returns a focused card for the run with the largest CV/holdout
// gap.
func (a *PortfolioAgent) Overfitting() (string, error) {
	result, err := a.EnsureAnalysis()
	if err != nil {
		return "", err
	}
	worst := result.Summary.WorstGap
	return strings.Join([]string{
		"Most overfitted experiment (largest CV - holdout gap):",
		fmt.Sprintf("  ID: %s", worst.ExperimentID),
		fmt.Sprintf("  Model: %s", worst.ModelType),
		fmt.Sprintf("  CV metric: %.4f", worst.CVMetric),
		fmt.Sprintf("  Holdout metric: %.4f", worst.HoldoutMetric),
		fmt.Sprintf("  Gap: %.4f", worst.Gap()),
		fmt.Sprintf("  Notes: %s", worst.Notes),
		"",
		"Tip: A big CV > LB gap often means leakage, bad split strategy, or over-complex features.",
	}, "\n"), nil
}

// TimeStats returns the training-time overview plus per-model mean times.
func (a *PortfolioAgent) TimeStats() (string, error) {
	result, err := a.EnsureAnalysis()
	if err != nil {
		return "", err
	}
	s := result.Summary
	lines := []string{
		"Training time overview (seconds):",
		fmt.Sprintf("  min:  %.1f", s.TimeStats.Min),
		fmt.Sprintf("  mean: %.1f", s.TimeStats.Mean),
		fmt.Sprintf("  max:  %.1f", s.TimeStats.Max),
		"",
		"Per-model mean train time:",
	}
	for _, model := range sortedModels(s.FamilyStats) {
		fs := s.FamilyStats[model]
		lines = append(lines, fmt.Sprintf("  %s: mean %.1fs over %d runs", model, fs.MeanTrainTime, fs.NRuns))
	}
	return strings.Join(lines, "\n"), nil
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func sortedModels(stats map[string]portfolio.FamilyStats) []string {
	names := make([]string, 0, len(stats))
	for m := range stats {
		names = append(names, m)
	}
	// Deterministic answer text regardless of map iteration order.
	sort.Strings(names)
	return names
}
