// Package defaults centralizes timeout and delay constants used across
// profilectl, keeping operational tuning values in one place instead of
// scattered magic numbers.
package defaults
