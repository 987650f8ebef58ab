package domain

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for manifests. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// NewManifest starts a manifest for a run of the named profile.
func NewManifest(profile string) Manifest {
	return Manifest{
		RunID:       uuid.NewString(),
		Profile:     profile,
		GeneratedAt: clock.Now().UTC(),
	}
}
