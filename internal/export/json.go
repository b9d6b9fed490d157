package export

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/sim"
)

// BodyState is one body at one sample time. Position and velocity are null
// when any component is NaN or Inf.
type BodyState struct {
	Name     string      `json:"name"`
	Position *[3]float64 `json:"position"`
	Velocity *[3]float64 `json:"velocity"`
}

// Report is the JSON form of a headless run. Non-finite numbers, such as
// the minimum separation of a single body or the drift of a run stopped by
// invalid state, are written as null.
type Report struct {
	Scenario      string              `json:"scenario"`
	Integrator    string              `json:"integrator"`
	G             float64             `json:"g"`
	Dt            float64             `json:"dt"`
	Duration      float64             `json:"duration"`
	Steps         int                 `json:"steps"`
	EnergyDrift   *float64            `json:"energy_drift"`
	MomentumDrift *float64            `json:"momentum_drift"`
	Times         []float64           `json:"times"`
	Samples       [][]BodyState       `json:"samples"`
	Metrics       map[string]*float64 `json:"metrics"`
	Errors        []string            `json:"errors,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func finiteVec(v mgl64.Vec3) *[3]float64 {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil
		}
	}
	out := [3]float64(v)
	return &out
}

// NewReport flattens a run result for encoding.
func NewReport(s *config.Scenario, result *sim.Result) Report {
	r := Report{
		Scenario:      s.Name,
		Integrator:    s.Integrator,
		G:             s.G,
		Dt:            s.Run.Dt,
		Duration:      s.Run.Duration,
		Steps:         result.StepsTaken,
		EnergyDrift:   finite(result.EnergyDrift),
		MomentumDrift: finite(result.MomentumDrift),
		Times:         result.Times,
		Samples:       make([][]BodyState, len(result.Snapshots)),
		Metrics:       make(map[string]*float64, len(result.Metrics)),
	}

	for name, v := range result.Metrics {
		r.Metrics[name] = finite(v)
	}
	for i, snap := range result.Snapshots {
		states := make([]BodyState, len(snap))
		for j, b := range snap {
			states[j] = BodyState{Name: b.Name, Position: finiteVec(b.Position), Velocity: finiteVec(b.Velocity)}
		}
		r.Samples[i] = states
	}
	for _, err := range result.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

// WriteJSON encodes the report with indentation.
func WriteJSON(w io.Writer, s *config.Scenario, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(s, result))
}

// ExportJSON writes the report to path. Nothing is written if encoding fails.
func ExportJSON(path string, s *config.Scenario, result *sim.Result) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, s, result); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
