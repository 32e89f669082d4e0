package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered     uint64
	LoginsSucceeded     uint64
	LoginsFailed        uint64
	PasswordResets      uint64
	PasswordHashCount   uint64
	PasswordHashTotalNs int64
	ProfileCacheHits    uint64
	ProfileCacheMisses  uint64
	ClientsCreated      uint64
	ClientsUpdated      uint64
	ClientsDeleted      uint64
	MeetingsCreated     uint64
	MeetingsUpdated     uint64
	MeetingsDeleted     uint64
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	usersRegistered     uint64
	loginsSucceeded     uint64
	loginsFailed        uint64
	passwordResets      uint64
	passwordHashCount   uint64
	passwordHashTotalNs int64
	profileCacheHits    uint64
	profileCacheMisses  uint64
	clientsCreated      uint64
	clientsUpdated      uint64
	clientsDeleted      uint64
	meetingsCreated     uint64
	meetingsUpdated     uint64
	meetingsDeleted     uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:     atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded:     atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:        atomic.LoadUint64(&m.loginsFailed),
		PasswordResets:      atomic.LoadUint64(&m.passwordResets),
		PasswordHashCount:   atomic.LoadUint64(&m.passwordHashCount),
		PasswordHashTotalNs: atomic.LoadInt64(&m.passwordHashTotalNs),
		ProfileCacheHits:    atomic.LoadUint64(&m.profileCacheHits),
		ProfileCacheMisses:  atomic.LoadUint64(&m.profileCacheMisses),
		ClientsCreated:      atomic.LoadUint64(&m.clientsCreated),
		ClientsUpdated:      atomic.LoadUint64(&m.clientsUpdated),
		ClientsDeleted:      atomic.LoadUint64(&m.clientsDeleted),
		MeetingsCreated:     atomic.LoadUint64(&m.meetingsCreated),
		MeetingsUpdated:     atomic.LoadUint64(&m.meetingsUpdated),
		MeetingsDeleted:     atomic.LoadUint64(&m.meetingsDeleted),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLogin increments the login counter for the given outcome.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == LoginSuccess {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncPasswordReset increments the password reset counter.
func (m *InMemoryRecorder) IncPasswordReset() {
	atomic.AddUint64(&m.passwordResets, 1)
}

// ObservePasswordHashDuration records time spent in Argon2id.
func (m *InMemoryRecorder) ObservePasswordHashDuration(duration time.Duration) {
	atomic.AddUint64(&m.passwordHashCount, 1)
	atomic.AddInt64(&m.passwordHashTotalNs, duration.Nanoseconds())
}

// IncProfileCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncProfileCacheHit() {
	atomic.AddUint64(&m.profileCacheHits, 1)
}

// IncProfileCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncProfileCacheMiss() {
	atomic.AddUint64(&m.profileCacheMisses, 1)
}

func (m *InMemoryRecorder) IncClientCreated() { atomic.AddUint64(&m.clientsCreated, 1) }
func (m *InMemoryRecorder) IncClientUpdated() { atomic.AddUint64(&m.clientsUpdated, 1) }
func (m *InMemoryRecorder) IncClientDeleted() { atomic.AddUint64(&m.clientsDeleted, 1) }

func (m *InMemoryRecorder) IncMeetingCreated() { atomic.AddUint64(&m.meetingsCreated, 1) }
func (m *InMemoryRecorder) IncMeetingUpdated() { atomic.AddUint64(&m.meetingsUpdated, 1) }
func (m *InMemoryRecorder) IncMeetingDeleted() { atomic.AddUint64(&m.meetingsDeleted, 1) }
