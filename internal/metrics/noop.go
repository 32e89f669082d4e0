package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered()                                 {}
func (n *NoopRecorder) IncLogin(status string)                             {}
func (n *NoopRecorder) IncPasswordReset()                                  {}
func (n *NoopRecorder) ObservePasswordHashDuration(duration time.Duration) {}
func (n *NoopRecorder) IncProfileCacheHit()                                {}
func (n *NoopRecorder) IncProfileCacheMiss()                               {}
func (n *NoopRecorder) IncClientCreated()                                  {}
func (n *NoopRecorder) IncClientUpdated()                                  {}
func (n *NoopRecorder) IncClientDeleted()                                  {}
func (n *NoopRecorder) IncMeetingCreated()                                 {}
func (n *NoopRecorder) IncMeetingUpdated()                                 {}
func (n *NoopRecorder) IncMeetingDeleted()                                 {}
