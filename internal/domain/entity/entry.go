package entity

import "time"

// Entry is a dated journal record owned by exactly one User.
//
// TimestampUTC is the canonical instant. UTCZone is the ±HH:MM offset the
// author supplied; it is kept only so clients can reconstruct the wall-clock
// time that was typed, and never reinterprets the instant.
type Entry struct {
	ID           int64
	TimestampUTC time.Time
	UTCZone      string
	Content      string
	UserID       int64
}
