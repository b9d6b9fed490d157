package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/sim"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Script is a sequence of runs read from yaml.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step runs a preset or scenario file with parameter overrides.
type Step struct {
	Preset     string             `yaml:"preset"`
	Config     string             `yaml:"config"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params"`
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

// Scenario resolves the scenario a step runs.
func (st Step) Scenario() (*config.Scenario, error) {
	var s *config.Scenario
	switch {
	case st.Config != "":
		loaded, err := config.Load(st.Config)
		if err != nil {
			return nil, err
		}
		s = loaded
	case st.Preset != "":
		s = config.GetPreset(st.Preset)
		if s == nil {
			return nil, fmt.Errorf("unknown preset: %s", st.Preset)
		}
	default:
		return nil, fmt.Errorf("step needs a preset or config")
	}

	if st.Integrator != "" {
		s.Integrator = st.Integrator
	}
	for name, v := range st.Params {
		if err := Apply(s, name, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RunScript executes every step in order and stops at the first failure.
func RunScript(ctx context.Context, script *Script) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(script.Steps))

	for i, step := range script.Steps {
		s, err := step.Scenario()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		klog.V(1).InfoS("running script step", "step", i+1, "of", len(script.Steps), "scenario", s.Name)

		result, err := run(ctx, s)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}
