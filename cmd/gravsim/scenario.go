package main

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// loadScenario resolves --config, then --preset, then fallback, and applies
// flags the user set explicitly on top.
func loadScenario(cmd *cobra.Command, fallback string) (*config.Scenario, error) {
	var s *config.Scenario
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s = loaded
	case presetName != "":
		s = config.GetPreset(presetName)
		if s == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	default:
		s = config.GetPreset(fallback)
		if s == nil {
			return nil, fmt.Errorf("unknown preset: %s", fallback)
		}
	}

	applyFlags(cmd, s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	klog.V(1).InfoS("loaded scenario", "name", s.Name, "bodies", len(s.Bodies), "integrator", s.Integrator)
	return s, nil
}

func applyFlags(cmd *cobra.Command, s *config.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("g") {
		s.G = g
	}
	if flags.Changed("integrator") {
		s.Integrator = integrator
	}
	if flags.Changed("time-scale") {
		s.Clock.TimeScale = timeScale
	}
	if flags.Changed("max-delta") {
		s.Clock.MaxDelta = maxDelta
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		s.Run.Dt = dt
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		s.Run.Duration = duration
	}
	if flags.Lookup("sample-every") != nil && flags.Changed("sample-every") {
		s.Run.SampleEvery = sampleEvery
	}
}
