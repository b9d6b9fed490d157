package automation

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravsim/internal/config"
)

// Param names accepted by Apply. Per-body parameters take the form
// "mass.<body>" or "factor.<body>".
var Params = []string{
	"g", "dt", "duration", "time_scale", "max_delta",
	"epsilon", "softening", "limit", "damping", "radius",
	"mass.<body>", "factor.<body>",
}

// Apply sets one named scenario parameter.
func Apply(s *config.Scenario, name string, value float64) error {
	if prefix, body, ok := strings.Cut(name, "."); ok {
		i := bodyIndex(s, body)
		if i < 0 {
			return fmt.Errorf("unknown body: %s", body)
		}
		switch prefix {
		case "mass":
			s.Bodies[i].Mass = value
		case "factor":
			s.Bodies[i].EccentricityFactor = value
		default:
			return fmt.Errorf("unknown body parameter: %s", prefix)
		}
		return nil
	}

	switch name {
	case "g":
		s.G = value
	case "dt":
		s.Run.Dt = value
	case "duration":
		s.Run.Duration = value
	case "time_scale":
		s.Clock.TimeScale = value
	case "max_delta":
		s.Clock.MaxDelta = value
	case "epsilon":
		s.Field.Epsilon = value
	case "softening":
		s.Field.Softening = value
	case "limit":
		s.Boundary.Limit = value
	case "damping":
		s.Boundary.Damping = value
	case "radius":
		s.Boundary.Radius = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

func bodyIndex(s *config.Scenario, name string) int {
	for i, b := range s.Bodies {
		if strings.EqualFold(b.Name, name) {
			return i
		}
	}
	return -1
}
