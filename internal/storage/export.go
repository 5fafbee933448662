package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/quantum"
)

type ExportAmplitude struct {
	Basis       string  `json:"basis"`
	Real        float64 `json:"real"`
	Imag        float64 `json:"imag"`
	Probability float64 `json:"probability"`
}

type ExportData struct {
	Name       string              `json:"name"`
	Qubits     int                 `json:"qubits"`
	Shots      int                 `json:"shots"`
	Seed       int64               `json:"seed"`
	Circuit    []quantum.Operation `json:"circuit"`
	Amplitudes []ExportAmplitude   `json:"amplitudes"`
	Counts     map[string]int      `json:"counts"`
	Metrics    map[string]float64  `json:"metrics"`
}

func NewExportData(result *experiment.Result) ExportData {
	data := ExportData{
		Name:       result.Name,
		Qubits:     result.Qubits,
		Shots:      result.Shots,
		Seed:       result.Seed,
		Circuit:    result.Circuit,
		Amplitudes: make([]ExportAmplitude, len(result.Amplitudes)),
		Counts:     make(map[string]int, len(result.Counts)),
		Metrics:    result.Metrics,
	}
	for i, a := range result.Amplitudes {
		data.Amplitudes[i] = ExportAmplitude{
			Basis:       quantum.BasisLabel(i, result.Qubits),
			Real:        real(a),
			Imag:        imag(a),
			Probability: result.Probabilities[i],
		}
	}
	for i, c := range result.Counts {
		data.Counts[quantum.BasisLabel(i, result.Qubits)] = c
	}
	return data
}

// ExportRun rebuilds the export document of a stored run.
func (s *Store) ExportRun(runID string) (ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return ExportData{}, err
	}
	amps, err := s.LoadAmplitudes(runID)
	if err != nil {
		return ExportData{}, err
	}
	counts, err := s.LoadCounts(runID)
	if err != nil {
		return ExportData{}, err
	}

	data := ExportData{
		Name:       meta.Name,
		Qubits:     meta.Qubits,
		Shots:      meta.Shots,
		Seed:       meta.Seed,
		Circuit:    meta.Circuit,
		Amplitudes: make([]ExportAmplitude, len(amps)),
		Counts:     make(map[string]int, len(counts)),
		Metrics:    meta.Metrics,
	}
	for i, a := range amps {
		data.Amplitudes[i] = ExportAmplitude{Basis: a.Basis, Real: real(a.Value), Imag: imag(a.Value), Probability: a.Probability}
	}
	for i, c := range counts {
		data.Counts[quantum.BasisLabel(i, meta.Qubits)] = c
	}
	return data, nil
}

func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, NewExportData(result))
}
