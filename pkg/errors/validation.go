package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from external input.
// Identifiers are layout-opaque but must be non-empty, printable, and of
// reasonable length so they can round-trip through JSON, DOT, and cache keys.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateRankDir validates a rank direction string ("tb", "bt", "lr", "rl").
// The empty string is valid and selects the default.
func ValidateRankDir(dir string) error {
	switch strings.ToLower(dir) {
	case "", "tb", "bt", "lr", "rl":
		return nil
	}
	return New(ErrCodeInvalidOptions, "unknown rankdir %q (want tb, bt, lr, or rl)", dir)
}

// ValidateRanker validates a ranker strategy name. The empty string selects
// the default network-simplex ranker.
func ValidateRanker(name string) error {
	switch name {
	case "", "network-simplex", "tight-tree", "longest-path", "none":
		return nil
	}
	return New(ErrCodeInvalidOptions,
		"unknown ranker %q (want network-simplex, tight-tree, longest-path, or none)", name)
}

// ValidateAcyclicer validates an acyclicer strategy name. Anything other
// than "greedy" or the empty string (DFS fallback) is rejected so typos do
// not silently change behavior.
func ValidateAcyclicer(name string) error {
	switch name {
	case "", "dfs", "greedy":
		return nil
	}
	return New(ErrCodeInvalidOptions, "unknown acyclicer %q (want greedy or dfs)", name)
}

// ValidateLabelPos validates an edge label position ("l", "c", "r").
// The empty string is valid and selects centered labels.
func ValidateLabelPos(pos string) error {
	switch strings.ToLower(pos) {
	case "", "l", "c", "r":
		return nil
	}
	return New(ErrCodeInvalidOptions, "unknown labelpos %q (want l, c, or r)", pos)
}
