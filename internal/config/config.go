package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/qsim/internal/quantum"
)

const (
	DefaultQubits = 1
	DefaultShots  = 1000
	MinShots      = 100
	MaxShots      = 10000
	ShotsStep     = 100
	// MaxUIQubits is the largest register the interactive front ends offer.
	MaxUIQubits = 3
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name    string `yaml:"name"`
	Qubits  int    `yaml:"qubits"`
	Shots   int    `yaml:"shots"`
	Seed    int64  `yaml:"seed"`
	Circuit []Step `yaml:"circuit"`
}

// Step is one gate application. Control is omitted for single-qubit gates.
type Step struct {
	Gate    string `yaml:"gate"`
	Target  int    `yaml:"target"`
	Control *int   `yaml:"control,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "circuit",
		Qubits: DefaultQubits,
		Shots:  DefaultShots,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks sizes and gate names. Qubit indices are left to the
// simulator, which reports them with the failing step.
func (c *Config) Validate() error {
	if c.Qubits < 1 || c.Qubits > quantum.MaxQubits {
		return fmt.Errorf("%w: qubits must be in 1..%d, got %d", ErrInvalidConfig, quantum.MaxQubits, c.Qubits)
	}
	if c.Shots < 0 {
		return fmt.Errorf("%w: shots must be non-negative, got %d", ErrInvalidConfig, c.Shots)
	}
	for i, st := range c.Circuit {
		if quantum.IsCNOT(st.Gate) {
			if st.Control == nil {
				return fmt.Errorf("%w: step %d: CNOT needs a control", ErrInvalidConfig, i)
			}
			continue
		}
		if _, err := quantum.Lookup(st.Gate); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalidConfig, i, err)
		}
	}
	// The name becomes a directory under the run store.
	if c.Name == "" || c.Name == "." || c.Name == ".." || strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("%w: name %q must be a plain file name", ErrInvalidConfig, c.Name)
	}
	return nil
}

func (c *Config) Operations() []quantum.Operation {
	ops := make([]quantum.Operation, len(c.Circuit))
	for i, st := range c.Circuit {
		ops[i] = quantum.Operation{Gate: st.Gate, Target: st.Target}
		if st.Control != nil {
			ctrl := *st.Control
			ops[i].Control = &ctrl
		}
	}
	return ops
}

// ParseCircuit reads the compact form used on the command line:
// comma-separated GATE:target or GATE:control:target tokens, e.g.
// "H:0,CNOT:0:1,Z:2".
func ParseCircuit(s string) ([]Step, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var steps []Step
	for i, tok := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(tok), ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
			return nil, fmt.Errorf("%w: token %d %q: want GATE:target or GATE:control:target", ErrInvalidConfig, i, tok)
		}
		nums := make([]int, 0, 2)
		for _, p := range parts[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("%w: token %d %q: %v", ErrInvalidConfig, i, tok, err)
			}
			nums = append(nums, n)
		}

		st := Step{Gate: strings.TrimSpace(parts[0])}
		if len(nums) == 1 {
			st.Target = nums[0]
		} else {
			ctrl := nums[0]
			st.Control = &ctrl
			st.Target = nums[1]
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// FormatCircuit is the inverse of ParseCircuit.
func FormatCircuit(steps []Step) string {
	toks := make([]string, len(steps))
	for i, st := range steps {
		if st.Control != nil {
			toks[i] = fmt.Sprintf("%s:%d:%d", st.Gate, *st.Control, st.Target)
		} else {
			toks[i] = fmt.Sprintf("%s:%d", st.Gate, st.Target)
		}
	}
	return strings.Join(toks, ",")
}

// ClampShots snaps n onto the shot slider range used by the front ends.
func ClampShots(n int) int {
	if n < MinShots {
		return MinShots
	}
	if n > MaxShots {
		return MaxShots
	}
	return n - n%ShotsStep
}
