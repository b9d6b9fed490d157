// Package physics provides the force fields of the engine.
//
// Each field implements [dynamo.ForceField]:
//
//   - [Gravity]: pairwise Newtonian attraction, O(n^2) per evaluation
//   - [UniformField]: one constant acceleration shared by all bodies
//
// Pairs closer than [Gravity.Epsilon] are skipped rather than treated as an
// error, so coincident bodies never produce Inf or NaN. Setting
// [Gravity.Backend] hands the sum to a [compute.Backend], which splits
// large systems across goroutines.
//
// # Energy Conservation
//
// Both fields expose Energy for drift monitoring:
//
//	g := physics.NewGravity(physics.AstronomicalG)
//	e0 := g.Energy(eng.Bodies())
package physics
