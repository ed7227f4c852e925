package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

const promptPreamble = `You are an assistant for a machine-learning experiment portfolio.
Answer the user's question using ONLY the portfolio data below. If the data
does not contain the answer, say so. Be concise and quote experiment IDs and
metrics exactly as they appear.`

// BuildPrompt assembles a grounding prompt: preamble, the summary serialized
// to JSON, the human-readable report, and the user's question.
func BuildPrompt(question string, result *portfolio.AnalysisResult) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", portfolio.ErrInvalidInput)
	}
	if result == nil || result.Summary == nil {
		return "", fmt.Errorf("%w: no analysis result to ground the prompt", portfolio.ErrInvalidInput)
	}

	summaryJSON, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize summary: %w", err)
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n--- PORTFOLIO SUMMARY (JSON) ---\n")
	b.Write(summaryJSON)
	b.WriteString("\n\n--- PORTFOLIO REPORT (TEXT) ---\n")
	b.WriteString(result.TextReport)
	b.WriteString("\n\n--- QUESTION ---\n")
	b.WriteString(question)
	return b.String(), nil
}

// OverfitInfo pairs the most-overfit experiment with its gap, mirroring the
// shape handed to tool-calling agents.
type OverfitInfo struct {
	Experiment portfolio.ExperimentRecord `json:"experiment"`
	Gap        float64                    `json:"gap"`
}

// TimeInfo bundles global timing stats with the per-model aggregates.
type TimeInfo struct {
	TimeStats   portfolio.TimeStats              `json:"time_stats"`
	FamilyStats map[string]portfolio.FamilyStats `json:"model_family_stats"`
}

// ToolBestExperiment returns the best-CV experiment as a tool payload.
func ToolBestExperiment(result *portfolio.AnalysisResult) portfolio.ExperimentRecord {
	return result.Summary.BestCV
}

// ToolOverfitting returns the most-overfit experiment and its gap.
func ToolOverfitting(result *portfolio.AnalysisResult) OverfitInfo {
	worst := result.Summary.WorstGap
	return OverfitInfo{Experiment: worst, Gap: worst.Gap()}
}

// ToolTimeStats returns training-time statistics as a tool payload.
func ToolTimeStats(result *portfolio.AnalysisResult) TimeInfo {
	return TimeInfo{
		TimeStats:   result.Summary.TimeStats,
		FamilyStats: result.Summary.FamilyStats,
	}
}
