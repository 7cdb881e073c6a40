package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"consav/internal/api"
	"consav/internal/config"
	"consav/internal/experiment"
	"consav/internal/plot"
	"consav/internal/storage"
	"consav/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// Solver settings
	tolerance float64
	maxIter   int

	// Model parameters
	crra       float64
	discFac    float64
	rfree      float64
	livPrb     float64
	permGroFac float64
	permShkStd float64
	tranShkStd float64
	unempPrb   float64
	incUnemp   float64
	capShare   float64
	deprFac    float64

	// Simulation settings
	periods    int
	seed       int64
	agentCount int
	trackVars  []string

	// Plot settings
	plotMax float64
	plotVar string
	svgOut  string

	// Serve settings
	addr string

	// Bench settings
	benchReps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "consav",
		Short: "consumption-saving model lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".consav", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve [model]",
		Short: "solve a model and plot its consumption function",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addParamFlags(solveCmd)
	solveCmd.Flags().Float64Var(&plotMax, "plot-max", 20.0, "upper bound of the plotted domain")
	solveCmd.Flags().StringVar(&svgOut, "svg", "", "write the consumption function to an SVG file")

	simulateCmd := &cobra.Command{
		Use:   "simulate [model]",
		Short: "solve a model, simulate it, and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulate,
	}
	addParamFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&periods, "periods", config.DefaultPeriods, "simulated horizon")
	simulateCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	simulateCmd.Flags().IntVar(&agentCount, "agents", config.DefaultAgentCount, "agent count (indshock)")
	simulateCmd.Flags().StringSliceVar(&trackVars, "track", nil, "variables to record")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's series",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&plotVar, "var", "mNrm", "variable to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved run's series to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a saved run's metadata to stdout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [preset1] [preset2] ...",
		Short: "overlay consumption functions of several presets",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().Float64Var(&plotMax, "plot-max", 20.0, "upper bound of the plotted domain")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "simulate with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&periods, "periods", config.DefaultPeriods, "simulated horizon")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&plotVar, "var", "mNrm", "variable to chart")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the solve/simulate HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark solving a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	addParamFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchReps, "reps", 5, "repetitions")

	rootCmd.AddCommand(solveCmd, simulateCmd, listCmd, plotCmd, exportCSVCmd,
		exportJSONCmd, presetsCmd, compareCmd, liveCmd, serveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "convergence tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "maximum solver iterations")
	cmd.Flags().Float64Var(&crra, "crra", config.DefaultCRRA, "relative risk aversion")
	cmd.Flags().Float64Var(&discFac, "disc-fac", config.DefaultDiscFac, "discount factor")
	cmd.Flags().Float64Var(&rfree, "rfree", config.DefaultRfree, "gross return (indshock)")
	cmd.Flags().Float64Var(&livPrb, "liv-prb", config.DefaultLivPrb, "survival probability")
	cmd.Flags().Float64Var(&permGroFac, "perm-gro", config.DefaultPermGroFac, "permanent growth factor")
	cmd.Flags().Float64Var(&permShkStd, "perm-shk-std", config.DefaultPermShkStd, "permanent shock std")
	cmd.Flags().Float64Var(&tranShkStd, "tran-shk-std", config.DefaultTranShkStd, "transitory shock std")
	cmd.Flags().Float64Var(&unempPrb, "unemp-prb", config.DefaultUnempPrb, "unemployment probability")
	cmd.Flags().Float64Var(&incUnemp, "inc-unemp", config.DefaultIncUnemp, "unemployment income")
	cmd.Flags().Float64Var(&capShare, "cap-share", config.DefaultCapShare, "capital share (repagent)")
	cmd.Flags().Float64Var(&deprFac, "depr-fac", config.DefaultDeprFac, "depreciation rate (repagent)")
}

// buildConfig resolves preset, config file, and flags, with flags winning.
func buildConfig(cmd *cobra.Command, modelName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = modelName

	if preset != "" {
		p := config.GetPreset(modelName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(modelName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Model = modelName
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if flags.Changed("crra") {
		cfg.Params.CRRA = crra
	}
	if flags.Changed("disc-fac") {
		cfg.Params.DiscFac = discFac
	}
	if flags.Changed("rfree") {
		cfg.Params.Rfree = rfree
	}
	if flags.Changed("liv-prb") {
		cfg.Params.LivPrb = livPrb
	}
	if flags.Changed("perm-gro") {
		cfg.Params.PermGroFac = permGroFac
	}
	if flags.Changed("perm-shk-std") {
		cfg.Params.PermShkStd = permShkStd
	}
	if flags.Changed("tran-shk-std") {
		cfg.Params.TranShkStd = tranShkStd
	}
	if flags.Changed("unemp-prb") {
		cfg.Params.UnempPrb = unempPrb
	}
	if flags.Changed("inc-unemp") {
		cfg.Params.IncUnemp = incUnemp
	}
	if flags.Changed("cap-share") {
		cfg.Params.CapShare = capShare
	}
	if flags.Changed("depr-fac") {
		cfg.Params.DeprFac = deprFac
	}
	if flags.Changed("periods") {
		cfg.Sim.Periods = periods
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("agents") {
		cfg.Sim.AgentCount = agentCount
	}
	if flags.Changed("track") {
		cfg.Sim.Track = trackVars
	}
	return cfg, nil
}

func logContext() context.Context {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("solving %s...\n", cfg.Model)
	if err := exp.Solve(logContext()); err != nil {
		return err
	}
	fmt.Printf("converged in %d iterations (%v)\n\n", exp.SolveIters, exp.SolveTime)

	sol := exp.Solution
	xMin := sol.MNrmMin
	if xMin < 0 {
		xMin = 0
	}

	fns := make([]func(float64) float64, len(sol.CFunc))
	for r := range sol.CFunc {
		cf := sol.CFunc[r]
		fns[r] = cf.Eval
	}
	chart, err := plot.Funcs(fns, xMin, plotMax, "consumption function c(m)")
	if err != nil {
		return err
	}
	fmt.Println(chart)

	if svgOut != "" {
		svg, err := plot.FuncSVG(sol.CFunc[0].Eval, xMin, plotMax, 800, 500, "#00ff88")
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	ctx := logContext()
	fmt.Printf("solving %s...\n", cfg.Model)
	if err := exp.Solve(ctx); err != nil {
		return err
	}
	fmt.Printf("converged in %d iterations (%v)\n", exp.SolveIters, exp.SolveTime)

	fmt.Printf("simulating %d periods...\n", cfg.Sim.Periods)
	result, err := exp.Simulate(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", exp.SimTime)

	runID, err := st.Save(cfg.Model, cfg.Sim.Seed, exp.SolveIters, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tPERIODS\tITERS\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Model, r.Periods, r.SolveIters, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, ok := series[plotVar]
	if !ok {
		names := make([]string, 0, len(series))
		for name := range series {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("variable %q not in run (available: %v)", plotVar, names)
	}
	chart, err := plot.Series(data, plotVar)
	if err != nil {
		return err
	}
	fmt.Println(chart)
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(series))
	maxLen := 0
	for name, data := range series {
		names = append(names, name)
		if len(data) > maxLen {
			maxLen = len(data)
		}
	}
	sort.Strings(names)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write(append([]string{"period"}, names...)); err != nil {
		return err
	}
	for t := 0; t < maxLen; t++ {
		row := []string{strconv.Itoa(t)}
		for _, name := range names {
			if t < len(series[name]) {
				row = append(row, strconv.FormatFloat(series[name][t], 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runCompare(cmd *cobra.Command, args []string) error {
	modelName := args[0]
	presetNames := args[1:]

	fns := make([]func(float64) float64, 0, len(presetNames))
	for _, name := range presetNames {
		cfg := config.GetPreset(modelName, name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(modelName))
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("solving %s/%s...\n", modelName, name)
		if err := exp.Solve(logContext()); err != nil {
			return err
		}
		fmt.Printf("  converged in %d iterations (%v)\n", exp.SolveIters, exp.SolveTime)
		for _, cf := range exp.Solution.CFunc {
			fns = append(fns, cf.Eval)
		}
	}

	chart, err := plot.Funcs(fns, 0, plotMax, fmt.Sprintf("c(m): %v", presetNames))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(chart)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("solving %s...\n", cfg.Model)
	if err := exp.Solve(logContext()); err != nil {
		return err
	}

	engine, err := exp.NewEngine()
	if err != nil {
		return err
	}
	return tui.Run(engine, cfg.Model, plotVar, cfg.Sim.Periods, cfg.Sim.Seed)
}

func runServe(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	return api.Serve(addr, logger)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx := logContext()
	var total time.Duration
	var iters int
	for i := 0; i < benchReps; i++ {
		exp, err := experiment.New(cfg)
		if err != nil {
			return err
		}
		if err := exp.Solve(ctx); err != nil {
			return err
		}
		total += exp.SolveTime
		iters = exp.SolveIters
	}
	fmt.Printf("%s: %d reps, %d iterations, avg %v per solve\n",
		cfg.Model, benchReps, iters, total/time.Duration(benchReps))
	return nil
}
