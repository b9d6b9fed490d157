package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gui"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultPreset = "solar"

func runHeadless(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	exp, err := experiment.New(s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d bodies, %s, dt=%g, t=%g)...\n", s.Name, len(s.Bodies), s.Integrator, s.Run.Dt, s.Run.Duration)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("interrupted: %v\n", err)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("samples: %d\n", len(result.Snapshots))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Printf("momentum drift: %.3e\n", result.MomentumDrift)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	engine := exp.Engine()
	if anchor := engine.Store().Anchor(); anchor != dynamo.NoAnchor {
		printOrbits(engine, s.OrbitNormal, result.Snapshots, result.Times, anchor)
	}

	if jsonFile != "" {
		if err := export.ExportJSON(jsonFile, s, result); err != nil {
			return fmt.Errorf("failed to export json: %w", err)
		}
		fmt.Printf("\nwrote %s\n", jsonFile)
	}
	if svgFile != "" {
		if err := export.ExportSVG(svgFile, result.Snapshots, export.PlaneFor(s.OrbitNormal), 800, 800); err != nil {
			return fmt.Errorf("failed to export svg: %w", err)
		}
		fmt.Printf("wrote %s\n", svgFile)
	}

	if plotBody >= 0 {
		return plotDistance(s, result.Snapshots, plotBody)
	}
	return nil
}

// printOrbits compares each body's Kepler period with the dominant period
// of its in-plane coordinate over the regularly spaced samples.
func printOrbits(engine *dynamo.Engine, normal mgl64.Vec3, snapshots [][]dynamo.Body, times []float64, anchor int) {
	final := engine.Bodies()
	n, sampleDt := analysis.UniformPrefix(times)
	snapshots = snapshots[:n]
	axis := analysis.OrbitPlane(normal)[0]

	fmt.Println("\norbits:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tA\tE\tKEPLER\tMEASURED")
	for i, b := range final {
		if i == anchor {
			continue
		}
		el := analysis.OrbitalElements(final[anchor], b, engine.G())
		measured := "-"
		if sampleDt > 0 {
			xs := analysis.CoordinateSeries(snapshots, i, anchor, axis)
			if p, err := analysis.DominantPeriod(xs, sampleDt); err == nil {
				measured = fmt.Sprintf("%.4f", p)
			}
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%s\n", b.Name, el.SemiMajorAxis, el.Eccentricity, el.Period, measured)
	}
	w.Flush()
}

func plotDistance(s *config.Scenario, snapshots [][]dynamo.Body, body int) error {
	if body >= len(s.Bodies) {
		return fmt.Errorf("body index %d out of range (%d bodies)", body, len(s.Bodies))
	}
	var data []float64
	caption := fmt.Sprintf("%s distance from origin", s.Bodies[body].Name)
	if s.Anchor != nil && s.Anchor.Index != body {
		data = analysis.RadialSeries(snapshots, body, s.Anchor.Index)
		caption = fmt.Sprintf("%s distance from %s", s.Bodies[body].Name, s.Bodies[s.Anchor.Index].Name)
	} else {
		data = make([]float64, len(snapshots))
		for i, snap := range snapshots {
			data[i] = snap[body].Position.Len()
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = experiment.NewRegistry().ListIntegrators()
	}

	fmt.Printf("comparing integrators on %s (dt=%g, duration=%g)\n\n", s.Name, s.Run.Dt, s.Run.Duration)

	start := time.Now()
	results, err := experiment.Compare(cmd.Context(), s, args)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%-12s  %-12s  %-14s  %-14s  %-8s\n", "integrator", "energy_drift", "momentum_drift", "min_separation", "errors")
	fmt.Println(strings.Repeat("-", 68))
	for i, name := range args {
		r := results[i]
		fmt.Printf("%-12s  %12.2e  %14.2e  %14.4g  %8d\n",
			name, r.Metrics["energy_drift"], r.Metrics["momentum_drift"], r.Metrics["min_separation"], len(r.Errors))
	}
	fmt.Printf("\nwall time: %v\n", elapsed)
	return nil
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, "cluster")
	if err != nil {
		return err
	}
	if len(s.Bodies) < 2 {
		return fmt.Errorf("need at least two bodies")
	}

	ref, err := experiment.Build(s)
	if err != nil {
		return err
	}
	shifted := s.Clone()
	shifted.Bodies[1].Position[0] += perturb
	other, err := experiment.Build(shifted)
	if err != nil {
		return err
	}

	lambda := analysis.LyapunovExponent(ref, other, s.Run.Dt, s.Run.Duration)
	fmt.Printf("%s: lyapunov exponent %.4f over t=%g\n", s.Name, lambda, s.Run.Duration)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if configFile == "" && presetName == "" {
		chosen, err := pickPreset()
		if err != nil || chosen == "" {
			return err
		}
		presetName = chosen
	}

	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}
	engine, err := experiment.Build(s)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(engine, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func pickPreset() (string, error) {
	final, err := tea.NewProgram(viz.NewPicker()).Run()
	if err != nil {
		return "", err
	}
	return final.(viz.Picker).Chosen(), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}
	engine, err := experiment.Build(s)
	if err != nil {
		return err
	}
	gui.Run(engine, s, gui.Options{Audio: withAudio})
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tINTEGRATOR\tBOUNDARY\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", name, len(p.Bodies), p.Integrator, p.Boundary.Kind, p.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	r := experiment.NewRegistry()
	fmt.Printf("\nfields:      %s\n", strings.Join(r.ListFields(), ", "))
	fmt.Printf("integrators: %s\n", strings.Join(r.ListIntegrators(), ", "))
	fmt.Printf("boundaries:  %s\n", strings.Join(r.ListBoundaries(), ", "))
	return nil
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		presetName = args[0]
	}
	s, err := loadScenario(cmd, defaultPreset)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := config.Save(outFile, s); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
