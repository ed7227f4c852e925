package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// FormatSummaryText renders a summary into a human-readable multi-section
// report: totals, per-model breakdown, best/worst highlights, and a timing
// section. Model families are listed in sorted order so the output is
// deterministic.
func FormatSummaryText(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total experiments: %d\n", s.NExperiments)
	b.WriteString("Models used (raw counts):\n")
	for _, model := range sortedModelNames(s.ModelCounts) {
		fmt.Fprintf(&b, "  - %s: %d runs\n", model, s.ModelCounts[model])
	}

	b.WriteString("\nPer-model summary:\n")
	for _, model := range sortedFamilyNames(s.FamilyStats) {
		fs := s.FamilyStats[model]
		fmt.Fprintf(&b, "  %s:\n", model)
		fmt.Fprintf(&b, "    runs:          %d\n", fs.NRuns)
		fmt.Fprintf(&b, "    best CV:       %.4f\n", fs.BestCV)
		fmt.Fprintf(&b, "    mean CV:       %.4f\n", fs.MeanCV)
		fmt.Fprintf(&b, "    mean CV-gap:   %.4f\n", fs.MeanGap)
		fmt.Fprintf(&b, "    mean train(s): %.1f\n", fs.MeanTrainTime)
	}

	best := s.BestCV
	b.WriteString("\nBest CV experiment:\n")
	fmt.Fprintf(&b, "  ID: %s\n", best.ExperimentID)
	fmt.Fprintf(&b, "  Model: %s\n", best.ModelType)
	fmt.Fprintf(&b, "  CV metric: %.4f\n", best.CVMetric)
	fmt.Fprintf(&b, "  Holdout metric: %.4f\n", best.HoldoutMetric)
	fmt.Fprintf(&b, "  Features: %s\n", best.FeaturesDesc)
	fmt.Fprintf(&b, "  Params: %s\n", best.ParamsSummary)

	worst := s.WorstGap
	b.WriteString("\nMost overfitted experiment (largest CV - holdout gap):\n")
	fmt.Fprintf(&b, "  ID: %s\n", worst.ExperimentID)
	fmt.Fprintf(&b, "  Model: %s\n", worst.ModelType)
	fmt.Fprintf(&b, "  CV metric: %.4f\n", worst.CVMetric)
	fmt.Fprintf(&b, "  Holdout metric: %.4f\n", worst.HoldoutMetric)
	fmt.Fprintf(&b, "  Gap: %.4f\n", worst.Gap())
	fmt.Fprintf(&b, "  Notes: %s\n", worst.Notes)

	b.WriteString("\nTraining time (seconds):\n")
	fmt.Fprintf(&b, "  min:  %.1f\n", s.TimeStats.Min)
	fmt.Fprintf(&b, "  mean: %.1f\n", s.TimeStats.Mean)
	fmt.Fprintf(&b, "  max:  %.1f\n", s.TimeStats.Max)

	return strings.TrimRight(b.String(), "\n")
}

func sortedModelNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for m := range counts {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

func sortedFamilyNames(stats map[string]FamilyStats) []string {
	names := make([]string, 0, len(stats))
	for m := range stats {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}
