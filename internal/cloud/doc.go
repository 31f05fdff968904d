// Package cloud generates electron probability-density point clouds for
// hydrogen orbitals.
//
// The engine proposes candidates from orbital-specific radial and angular
// distributions and keeps them by accept/reject sampling against an
// approximate density:
//
//   - [Sampler]: seeded generator producing []Point for a [Request]
//   - [ApplyCutoff]: probability threshold filter applied by callers
//   - [ColorFor]: deterministic color mapping shared by every renderer
//   - [Summarize], [RadialHistogram]: statistics over a generated cloud
//   - [GenerateBatch]: independent requests generated in parallel
//
// The densities are qualitative approximations of hydrogen wavefunctions.
// They reproduce the recognizable orbital shapes, not normalized physics.
//
// # Example
//
//	s := cloud.NewSeeded(42, cloud.DefaultOptions())
//	points := s.Generate(cloud.Request{N: 2, L: 1, M: 0, NumPoints: 3000})
//	visible := cloud.ApplyCutoff(points, 0.05)
//
// # Thread Safety
//
// A Sampler owns its random source and is NOT safe for concurrent use.
// Use one Sampler per goroutine, or [GenerateBatch], which does that for you.
package cloud
