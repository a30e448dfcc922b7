// Package iclp implements an interval constraint logic programming core:
// sound interval arithmetic over Booleans, Integers and Reals, a primitive
// relation library, a constraint compiler, and a fixed-point propagation
// scheduler with split-based search.
package iclp

// Version identifies the engine's public API revision.
const Version = "0.1.0"
