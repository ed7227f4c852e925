package portfolio

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// requiredColumns is the expected CSV header set. Extra columns are ignored;
// column order does not matter.
var requiredColumns = []string{
	"experiment_id",
	"model_type",
	"features_desc",
	"params_summary",
	"cv_metric",
	"holdout_metric",
	"train_time_seconds",
	"notes",
}

// LoadExperiments reads an experiments CSV into records. The first row is
// treated as the header. It fails with ErrNotFound if the file is missing,
// ErrSchema if a required column is absent, and ErrInvalidInput if a numeric
// cell does not parse or a train time is negative.
func LoadExperiments(path string) ([]ExperimentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty (no header row)", ErrInvalidInput, path)
	}

	colIndex := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		colIndex[h] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := colIndex[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", ErrSchema, missing)
	}

	records := make([]ExperimentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header

		cell := func(col string) string { return row[colIndex[col]] }
		num := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(cell(col), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: row %d column %q: %q is not numeric", ErrInvalidInput, line, col, cell(col))
			}
			return v, nil
		}

		cv, err := num("cv_metric")
		if err != nil {
			return nil, err
		}
		holdout, err := num("holdout_metric")
		if err != nil {
			return nil, err
		}
		trainTime, err := num("train_time_seconds")
		if err != nil {
			return nil, err
		}
		if trainTime < 0 {
			return nil, fmt.Errorf("%w: row %d: train_time_seconds must be non-negative, got %v", ErrInvalidInput, line, trainTime)
		}

		records = append(records, ExperimentRecord{
			ExperimentID:     cell("experiment_id"),
			ModelType:        cell("model_type"),
			FeaturesDesc:     cell("features_desc"),
			ParamsSummary:    cell("params_summary"),
			CVMetric:         cv,
			HoldoutMetric:    holdout,
			TrainTimeSeconds: trainTime,
			Notes:            cell("notes"),
		})
	}

	return records, nil
}
