package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"consav/internal/sim"
)

// Store persists simulation runs, one directory per run holding
// metadata.json and series.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Periods    int                `json:"periods"`
	SolveIters int                `json:"solve_iters"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(modelName string, seed int64, solveIters int, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", modelName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      modelName,
		Timestamp:  time.Now(),
		Seed:       seed,
		Periods:    result.Periods,
		SolveIters: solveIters,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"period"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for t := 0; t < result.Periods; t++ {
		row := []string{strconv.Itoa(t)}
		for _, name := range names {
			series := result.Series[name]
			if t < len(series) {
				row = append(row, strconv.FormatFloat(series[t], 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the tracked series of a saved run.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		for j := 1; j < len(record) && j < len(header); j++ {
			if record[j] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}
	return series, nil
}
