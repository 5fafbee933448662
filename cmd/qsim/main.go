package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/qsim/internal/automation"
	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/export"
	"github.com/san-kum/qsim/internal/quantum"
	"github.com/san-kum/qsim/internal/storage"
	"github.com/san-kum/qsim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	qubits     int
	shots      int
	seed       int64
	circuit    string
	configFile string
	preset     string
	noSave     bool
	outDir     string
	trials     int
	sweepSteps int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "qsim",
})

// main registers the qsim commands and opens the interactive circuit builder
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "qsim",
		Short: "state-vector quantum circuit lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(qubits, shots, seed)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().IntVar(&qubits, "qubits", 2, "number of qubits (1-3)")
	rootCmd.Flags().IntVar(&shots, "shots", config.DefaultShots, "measurement shots")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a circuit and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCircuit,
	}
	runCmd.Flags().IntVar(&qubits, "qubits", config.DefaultQubits, "number of qubits")
	runCmd.Flags().IntVar(&shots, "shots", config.DefaultShots, "measurement shots")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	runCmd.Flags().StringVar(&circuit, "circuit", "", `gates, e.g. "H:0,CNOT:0:1"`)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset circuit")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	gatesCmd := &cobra.Command{
		Use:   "gates [name]",
		Short: "list gates or show one gate's matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showGates,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset circuits",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tQUBITS\tCIRCUIT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, p.Qubits, config.FormatCircuit(p.Circuit))
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write probability, amplitude and histogram charts as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sampling error against shot count",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of shot counts")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "repeat a preset under independent seeds",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().IntVar(&shots, "shots", config.DefaultShots, "shots per trial")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive circuit builder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(qubits, shots, seed)
		},
	}
	tuiCmd.Flags().IntVar(&qubits, "qubits", 2, "number of qubits (1-3)")
	tuiCmd.Flags().IntVar(&shots, "shots", config.DefaultShots, "measurement shots")
	tuiCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	rootCmd.AddCommand(runCmd, gatesCmd, presetsCmd, listCmd, showCmd, exportCmd, exportJSONCmd, exportSVGCmd, scenarioCmd, sweepCmd, monteCarloCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		preset = args[0]
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("qubits") {
		cfg.Qubits = qubits
	}
	if cmd.Flags().Changed("shots") {
		cfg.Shots = shots
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("circuit") {
		steps, err := config.ParseCircuit(circuit)
		if err != nil {
			return nil, err
		}
		cfg.Circuit = steps
	}
	return cfg, cfg.Validate()
}

func runCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("running circuit", "name", cfg.Name, "qubits", cfg.Qubits, "circuit", config.FormatCircuit(cfg.Circuit))
	result, err := experiment.Run(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	printResult(result)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func printResult(result *experiment.Result) {
	fmt.Printf("%s: %d qubits, %d gates, %d shots, seed %d, %v\n\n",
		result.Name, result.Qubits, len(result.Circuit), result.Shots, result.Seed, result.Elapsed)

	fmt.Println("circuit:")
	lines := viz.CircuitLines(result.Circuit)
	if len(lines) == 0 {
		fmt.Println("  No gates applied yet")
	}
	for _, l := range lines {
		fmt.Printf("  %s\n", l)
	}

	fmt.Println("\nstate:")
	for _, l := range viz.StateLines(result.Amplitudes, result.Qubits) {
		fmt.Printf("  %s\n", l)
	}

	if result.Shots > 0 {
		fmt.Println("\nmeasurements:")
		fmt.Print(viz.CountBars(result.Counts, result.Qubits, result.Shots, 30))
	}

	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func showGates(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		g, err := quantum.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n%s\n\n", g.Glyph, g.Title, g.Description)
		fmt.Print(viz.FormatMatrix(g.Matrix))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGATE\tDESCRIPTION")
	for _, g := range quantum.Gates() {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", g.Name, g.Glyph, g.Title, g.Description)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", quantum.CNOTName, "controlled-NOT", "flips the target when the control is |1⟩ (needs control:target)")
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tQUBITS\tGATES\tSHOTS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Qubits,
			len(run.Circuit),
			run.Shots,
			run.Seed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	amps, err := st.LoadAmplitudes(runID)
	if err != nil {
		return err
	}
	counts, err := st.LoadCounts(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("qubits: %d, shots: %d, seed: %d\n\n", meta.Qubits, meta.Shots, meta.Seed)

	for _, l := range viz.CircuitLines(meta.Circuit) {
		fmt.Printf("  %s\n", l)
	}
	fmt.Println()

	values := make([]complex128, len(amps))
	probs := make([]float64, len(amps))
	for i, a := range amps {
		values[i] = a.Value
		probs[i] = a.Probability
	}
	for _, l := range viz.StateLines(values, meta.Qubits) {
		fmt.Printf("  %s\n", l)
	}
	fmt.Println()

	fmt.Println(viz.ProbabilityPlot(probs, 60, 10))
	fmt.Println()
	if meta.Shots > 0 {
		fmt.Println(viz.HistogramPlot(counts, meta.Shots, 60, 10))
		fmt.Println()
		for _, l := range viz.CountLines(counts, meta.Qubits, meta.Shots) {
			fmt.Printf("  %s\n", l)
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.ExportRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	amps, err := st.LoadAmplitudes(runID)
	if err != nil {
		return err
	}
	counts, err := st.LoadCounts(runID)
	if err != nil {
		return err
	}

	labels := quantum.BasisLabels(meta.Qubits)
	values := make([]complex128, len(amps))
	probs := make([]float64, len(amps))
	for i, a := range amps {
		values[i] = a.Value
		probs[i] = a.Probability
	}

	charts := map[string]string{
		"probabilities.svg": export.BarChartSVG(
			export.Chart{Title: "Measurement Probabilities", YLabel: "Probability", Width: 800, Height: 400, YMax: 1},
			export.ProbabilityBars(labels, probs)),
		"amplitudes.svg": export.AmplitudeSVG(
			export.Chart{Title: "State Amplitudes", YLabel: "Amplitude", Width: 800, Height: 400},
			labels, values),
	}
	if meta.Shots > 0 {
		charts["histogram.svg"] = export.BarChartSVG(
			export.Chart{Title: fmt.Sprintf("Measurement Results (%d shots)", meta.Shots), YLabel: "Count", Width: 800, Height: 400},
			export.HistogramBars(labels, counts, meta.Shots))
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for name, svg := range charts {
		path := filepath.Join(outDir, runID+"_"+name)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info("wrote chart", "path", path)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	results, err := automation.RunScenario(context.Background(), sc, st, logger)
	for _, r := range results {
		fmt.Printf("%-20s %s\n", r.Name, strings.Join(viz.CountLines(r.Counts, r.Qubits, r.Shots), "  "))
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	cfg.Seed = seed

	points, err := automation.RunSweep(context.Background(), &automation.ShotSweep{
		Config:   cfg,
		MinShots: config.MinShots,
		MaxShots: config.MaxShots,
		NumSteps: sweepSteps,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHOTS\tDISTANCE")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%.5f\n", p.Shots, p.Distance)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	cfg.Shots = shots

	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Config:    cfg,
		NumTrials: trials,
		Seed:      seed,
	}, logger)
	if err != nil {
		return err
	}

	mean, worst := automation.MonteCarloStats(results)
	fmt.Printf("%d trials of %s at %d shots\n", len(results), cfg.Name, cfg.Shots)
	fmt.Printf("  mean distance:  %.5f\n", mean)
	fmt.Printf("  worst distance: %.5f\n", worst)
	return nil
}
