// Package analysis extracts orbital quantities from bodies and recorded
// trajectories.
//
//   - [OrbitalElements]: semi-major axis, eccentricity and Kepler period of a
//     body around its primary
//   - [DominantPeriod]: period of the strongest frequency in a sampled series,
//     from the spectrum computed with go-dsp
//   - [LyapunovExponent]: sensitivity of a system to its initial state
//
// # Orbital Period
//
// The period of a seeded orbit can be measured from a headless run:
//
//	xs := analysis.CoordinateSeries(result.Snapshots, earth, sun, 0)
//	period, err := analysis.DominantPeriod(xs, sampleDt)
package analysis
