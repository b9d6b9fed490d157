package main

import (
	goflag "flag"
	"os"
	"strings"

	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	configFile  string
	presetName  string
	g           float64
	integrator  string
	dt          float64
	duration    float64
	sampleEvery int
	timeScale   float64
	maxDelta    float64
	outFile     string
	perturb     float64
	plotBody    int
	jsonFile    string
	svgFile     string
	withAudio   bool
	themeName   string
	workers     int
)

// main registers the gravsim commands and runs the live view when no
// subcommand is given.
func main() {
	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	defer klog.Flush()

	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "n-body gravity simulator",
		SilenceUsage: true,
		RunE:         runLive,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viz.SetTheme(themeName); err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				compute.SetBackend(compute.NewCPUBackendWorkers(workers))
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "built-in scenario")
	rootCmd.PersistentFlags().Float64Var(&g, "g", 0, "gravitational constant")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(experiment.NewRegistry().ListIntegrators(), ", ")+")")
	rootCmd.PersistentFlags().Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "simulated seconds per wall-clock second")
	rootCmd.PersistentFlags().Float64Var(&maxDelta, "max-delta", config.DefaultMaxDelta, "largest frame time fed to the clock")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.CurrentTheme.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "goroutines for parallel gravity (default: all cpus)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&plotBody, "plot", -1, "plot the distance of this body from the anchor")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "write the sampled run to a json file")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "draw the trajectories to an svg file")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "run one scenario under several integrators in parallel (default: all)",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate sensitivity to initial conditions",
		Args:  cobra.NoArgs,
		RunE:  estimateLyapunov,
	}
	addRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturb, "perturb", 1e-8, "initial position offset of the second body")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run a scenario in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play an energy-driven pad")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print a scenario as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run a scenario across a range of one parameter",
		Long:  "Parameters: " + strings.Join(automation.Params, ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb initial positions and count stable runs",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&noise, "noise", 0.01, "position perturbation half-width")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	tuneCmd := &cobra.Command{
		Use:     "tune",
		Short:   "grid search parameters minimizing a metric",
		Example: "  gravsim tune --preset cluster --grid dt=0.001,0.002 --grid softening=0.01,0.05",
		Args:    cobra.NoArgs,
		RunE:    runTune,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridValues, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimize")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a yaml script of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(runCmd, compareCmd, lyapunovCmd, liveCmd, guiCmd, presetsCmd, configCmd,
		sweepCmd, monteCarloCmd, tuneCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "keep every n-th state")
}
