package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/optim"
	"github.com/spf13/cobra"
)

var (
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	noise      float64
	seed       int64
	metricName string
	gridValues []string
)

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	sweep := automation.ParameterSweep{Param: args[0], Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	fmt.Printf("sweeping %s over [%g, %g] on %s\n\n", sweep.Param, sweep.Min, sweep.Max, s.Name)

	results, err := automation.RunSweep(cmd.Context(), s, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tENERGY_DRIFT\tMOMENTUM_DRIFT\tMIN_SEP\tESCAPES\tERROR")
	drifts := make([]float64, 0, len(results))
	for _, r := range results {
		errText := "-"
		if r.Err != nil {
			errText = r.Err.Error()
		} else {
			drifts = append(drifts, r.EnergyDrift)
		}
		fmt.Fprintf(w, "%g\t%.3e\t%.3e\t%.4g\t%.0f\t%s\n", r.Value, r.EnergyDrift, r.MomentumDrift, r.MinSeparation, r.Escapes, errText)
	}
	w.Flush()

	if len(drifts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(drifts, asciigraph.Height(8), asciigraph.Caption("energy drift")))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	cfg := automation.MonteCarloConfig{Perturbation: noise, Trials: trials, Seed: seed}
	fmt.Printf("running %d trials of %s with perturbation %g\n", cfg.Trials, s.Name, cfg.Perturbation)

	results, err := automation.RunMonteCarlo(cmd.Context(), s, cfg)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	if len(results) > 0 {
		fmt.Printf("stability: %.1f%%\n", 100*float64(stable)/float64(len(results)))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridValues))
	ranges := make([][]float64, 0, len(gridValues))
	for _, entry := range gridValues {
		name, list, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("expected name=v1,v2,... got %q", entry)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("bad value for %s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	params, best, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), s, metricName)
	if err != nil {
		return err
	}
	if params == nil {
		return fmt.Errorf("no combination produced %s", metricName)
	}

	fmt.Printf("best %s: %.4e\n", metricName, best)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, params[name])
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	fmt.Printf("running %s (%d steps)\n", script.Name, len(script.Steps))

	results, err := automation.RunScript(cmd.Context(), script)
	for i, r := range results {
		fmt.Printf("step %d: steps=%d energy_drift=%.3e momentum_drift=%.3e\n", i+1, r.StepsTaken, r.EnergyDrift, r.MomentumDrift)
	}
	return err
}
