package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/quantum"
)

const (
	metadataFile   = "metadata.json"
	amplitudesFile = "amplitudes.csv"
	countsFile     = "counts.csv"
)

// ErrInvalidRunName is returned for run names and IDs that would resolve
// outside the store's directory.
var ErrInvalidRunName = errors.New("storage: invalid run name")

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
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Timestamp time.Time           `json:"timestamp"`
	Qubits    int                 `json:"qubits"`
	Shots     int                 `json:"shots"`
	Seed      int64               `json:"seed"`
	Circuit   []quantum.Operation `json:"circuit"`
	Metrics   map[string]float64  `json:"metrics"`
}

// Amplitude is one row of amplitudes.csv.
type Amplitude struct {
	Index       int
	Basis       string
	Value       complex128
	Probability float64
}

func newRunID(name string) string {
	return fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
}

// checkRunName rejects empty names, "." and "..", and anything containing a
// path separator.
func checkRunName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidRunName, name)
	}
	return nil
}

func (s *Store) runDir(runID string) (string, error) {
	if err := checkRunName(runID); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	if err := checkRunName(result.Name); err != nil {
		return "", err
	}
	runID := newRunID(result.Name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      result.Name,
		Timestamp: time.Now(),
		Qubits:    result.Qubits,
		Shots:     result.Shots,
		Seed:      result.Seed,
		Circuit:   result.Circuit,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	ampRows := [][]string{{"index", "basis", "real", "imag", "probability"}}
	for i, a := range result.Amplitudes {
		ampRows = append(ampRows, []string{
			strconv.Itoa(i),
			quantum.BasisLabel(i, result.Qubits),
			formatFloat(real(a)),
			formatFloat(imag(a)),
			formatFloat(result.Probabilities[i]),
		})
	}
	if err := writeCSV(filepath.Join(runDir, amplitudesFile), ampRows); err != nil {
		return "", err
	}

	countRows := [][]string{{"index", "basis", "count"}}
	for i, c := range result.Counts {
		countRows = append(countRows, []string{
			strconv.Itoa(i),
			quantum.BasisLabel(i, result.Qubits),
			strconv.Itoa(c),
		})
	}
	if err := writeCSV(filepath.Join(runDir, countsFile), countRows); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadCounts(runID string) ([]int, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	records, err := readCSV(filepath.Join(dir, countsFile))
	if err != nil {
		return nil, err
	}

	counts := make([]int, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		c, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad count %q: %w", countsFile, rec[2], err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func (s *Store) LoadAmplitudes(runID string) ([]Amplitude, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	records, err := readCSV(filepath.Join(dir, amplitudesFile))
	if err != nil {
		return nil, err
	}

	amps := make([]Amplitude, 0, len(records))
	for _, rec := range records {
		if len(rec) < 5 {
			continue
		}
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s: bad index %q: %w", amplitudesFile, rec[0], err)
		}
		vals := make([]float64, 3)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", amplitudesFile, idx, err)
			}
		}
		amps = append(amps, Amplitude{
			Index:       idx,
			Basis:       rec[1],
			Value:       complex(vals[0], vals[1]),
			Probability: vals[2],
		})
	}
	return amps, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 10, 64)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

// readCSV returns the data rows of path, without the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
