package portfolio

import "path/filepath"

// AnalysisResult bundles everything one analysis pass produces, so the CLI,
// the rule agent, and the LLM layer can share a single load+summarize call.
type AnalysisResult struct {
	ExperimentsPath string   `json:"experiments_path"`
	Summary         *Summary `json:"summary"`
	TextReport      string   `json:"text_report"`
}

// RunAnalysis loads the experiments CSV at path, summarizes it, and renders
// the text report. Any load or validation error fails the whole call; no
// partial result is returned.
func RunAnalysis(path string) (*AnalysisResult, error) {
	records, err := LoadExperiments(path)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(records)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &AnalysisResult{
		ExperimentsPath: abs,
		Summary:         summary,
		TextReport:      FormatSummaryText(summary),
	}, nil
}
