// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes passed to IncLogin.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncUserRegistered()
	IncLogin(status string) // status: "success" or "failure"
	IncPasswordReset()
	ObservePasswordHashDuration(duration time.Duration)

	// Profile cache metrics
	IncProfileCacheHit()
	IncProfileCacheMiss()

	// Client management metrics
	IncClientCreated()
	IncClientUpdated()
	IncClientDeleted()

	// Meeting management metrics
	IncMeetingCreated()
	IncMeetingUpdated()
	IncMeetingDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
