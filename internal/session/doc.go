// Package session implements the interactive measurement capture that feeds
// the georeferencing transform: reference pixel, scale bar, north direction,
// and manual declination, collected in that fixed order.
//
// Input arrives through the Source and Prompter abstractions rather than a
// concrete UI, so the state machine runs identically against a terminal and
// against a scripted event sequence in tests. Each capture step blocks on
// exactly one resumption condition and honours a cancel event in every
// non-complete state; a cancelled session never yields measurements.
package session
