package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/metrics"
	"github.com/san-kum/qsim/internal/storage"
)

// Scenario defines a scripted sequence of circuit runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Preset, if set, supplies the defaults; the
// other fields override it when non-zero. Gates is the compact circuit form
// ("H:0,CNOT:0:1") and is appended after Circuit.
type ScenarioStep struct {
	Preset  string        `yaml:"preset"`
	Name    string        `yaml:"name"`
	Qubits  int           `yaml:"qubits"`
	Shots   int           `yaml:"shots"`
	Seed    int64         `yaml:"seed"`
	Circuit []config.Step `yaml:"circuit"`
	Gates   string        `yaml:"gates"`
	SaveAs  string        `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step into a validated run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalidConfig, s.Preset)
		}
	}
	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	if s.Qubits != 0 {
		cfg.Qubits = s.Qubits
	}
	if s.Shots != 0 {
		cfg.Shots = s.Shots
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if len(s.Circuit) > 0 || s.Gates != "" {
		steps, err := config.ParseCircuit(s.Gates)
		if err != nil {
			return nil, err
		}
		cfg.Circuit = append(append([]config.Step{}, s.Circuit...), steps...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// RunScenario executes all steps in a scenario. With a non-nil store every
// result is saved and its run ID logged.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *log.Logger) ([]*experiment.Result, error) {
	logger = orDiscard(logger)
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", cfg.Name)

		result, err := experiment.Run(ctx, cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if store != nil {
			id, err := store.Save(result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("saved run", "step", i+1, "id", id)
		}
	}

	return results, nil
}

// ShotSweep reruns one circuit at increasing shot counts to show how the
// sampled histogram converges on the exact distribution.
type ShotSweep struct {
	Config   *config.Config
	MinShots int
	MaxShots int
	NumSteps int
}

// SweepResult holds one point of a shot sweep
type SweepResult struct {
	Shots    int
	Counts   []int
	Distance float64
}

// RunSweep executes a shot sweep
func RunSweep(ctx context.Context, sweep *ShotSweep, logger *log.Logger) ([]SweepResult, error) {
	logger = orDiscard(logger)
	if sweep.NumSteps < 1 || sweep.MinShots < 0 || sweep.MaxShots < sweep.MinShots {
		return nil, fmt.Errorf("%w: sweep needs 0 <= min <= max shots and at least one step", config.ErrInvalidConfig)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	stepSize := 0
	if sweep.NumSteps > 1 {
		stepSize = (sweep.MaxShots - sweep.MinShots) / (sweep.NumSteps - 1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *sweep.Config
		cfg.Shots = sweep.MinShots + i*stepSize
		if i == sweep.NumSteps-1 {
			cfg.Shots = sweep.MaxShots
		}

		result, err := experiment.Run(ctx, &cfg, nil)
		if err != nil {
			return nil, err
		}

		d := metrics.TotalVariation(result.Probabilities, result.Counts, result.Shots)
		results = append(results, SweepResult{
			Shots:    result.Shots,
			Counts:   result.Counts,
			Distance: d,
		})

		logger.Debug("sweep point", "step", i+1, "of", sweep.NumSteps, "shots", cfg.Shots, "distance", d)
	}

	return results, nil
}

// MonteCarloConfig repeats one circuit under independent sampler seeds
type MonteCarloConfig struct {
	Config    *config.Config
	NumTrials int
	Seed      int64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	TrialID  int
	Seed     int64
	Counts   []int
	Distance float64
}

// RunMonteCarlo executes cfg.NumTrials runs, each with a seed drawn from a
// generator seeded by cfg.Seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *log.Logger) ([]MonteCarloResult, error) {
	logger = orDiscard(logger)
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		run := *cfg.Config
		// zero would ask the experiment for a clock seed
		run.Seed = rng.Int63() | 1

		result, err := experiment.Run(ctx, &run, nil)
		if err != nil {
			return nil, err
		}

		results = append(results, MonteCarloResult{
			TrialID:  trial,
			Seed:     run.Seed,
			Counts:   result.Counts,
			Distance: metrics.TotalVariation(result.Probabilities, result.Counts, result.Shots),
		})

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats summarizes the trials' distance from the exact
// distribution.
func MonteCarloStats(results []MonteCarloResult) (mean, worst float64) {
	if len(results) == 0 {
		return 0, 0
	}
	distances := make([]float64, len(results))
	for i, r := range results {
		distances[i] = r.Distance
	}
	return stat.Mean(distances, nil), floats.Max(distances)
}
