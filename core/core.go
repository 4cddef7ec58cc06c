// Package core implements the property investment scoring engine.
//
// The pipeline converts a partially-populated property record plus a
// partially-populated enrichment bundle into a bounded 0-125 investment
// score, a letter grade, a confidence estimate and a set of edge case
// classifications. Every stage is a pure transform over immutable inputs:
// the engine owns no state beyond its static rule tables and is safe for
// any number of concurrent callers.
package core

// ScoringVersion identifies the rule tables and weights in effect. Bump on
// any change that can move a score for identical input.
const ScoringVersion = "2.3.0"
