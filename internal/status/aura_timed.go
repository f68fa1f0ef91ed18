package status

import (
	"fmt"
	"time"
)

// TimedAura removes itself from its list once its countdown runs out.
type TimedAura struct {
	auraCore
	duration  time.Duration
	remaining time.Duration
}

// NewTimedAura creates an unattached aura with a full countdown.
func NewTimedAura(name string, duration time.Duration, effects ...Effect) *TimedAura {
	return &TimedAura{
		auraCore:  auraCore{name: name, effects: effects},
		duration:  duration,
		remaining: duration,
	}
}

func (a *TimedAura) TypeName() string { return "TimedAura" }

// Duration returns the full duration.
func (a *TimedAura) Duration() time.Duration { return a.duration }

// SetDuration changes the full duration. The running countdown is kept.
func (a *TimedAura) SetDuration(d time.Duration) { a.duration = d }

// Remaining returns the time left.
func (a *TimedAura) Remaining() time.Duration { return a.remaining }

// ResetDuration restarts the countdown without toggling enable state.
func (a *TimedAura) ResetDuration() { a.remaining = a.duration }

// attach restarts a fresh or expired countdown before enabling.
func (a *TimedAura) attach(list *AuraList) error {
	if a.remaining <= 0 {
		a.remaining = a.duration
	}
	return a.auraCore.enable(list)
}

// tick advances the countdown and reports whether it ran out.
func (a *TimedAura) tick(elapsed time.Duration) bool {
	a.remaining -= elapsed
	return a.remaining <= 0
}

// Clone returns an unattached deep copy with a full countdown.
func (a *TimedAura) Clone() (*TimedAura, error) {
	effects, err := a.cloneEffects()
	if err != nil {
		return nil, err
	}
	return &TimedAura{
		auraCore: auraCore{
			name:    a.name,
			symbol:  a.symbol,
			color:   a.color,
			effects: effects,
		},
		duration:  a.duration,
		remaining: a.duration,
	}, nil
}

// Version 2 added the running countdown; version 1 records load with a
// full countdown.
const timedAuraVersion = 2

func (a *TimedAura) Serialize(sc *SerializationContext) error {
	if err := a.serializeCore(sc); err != nil {
		return err
	}
	sc.WriteInt(timedAuraVersion)
	sc.WriteLong(int64(a.duration))
	sc.WriteLong(int64(a.remaining))
	return nil
}

func (a *TimedAura) Deserialize(dc *DeserializationContext) error {
	f, err := readAuraFields(dc)
	if err != nil {
		return err
	}
	version, err := dc.ReadVersion(1, timedAuraVersion, a.TypeName())
	if err != nil {
		return err
	}
	d, err := dc.ReadLong()
	if err != nil {
		return fmt.Errorf("reading duration: %w", err)
	}
	remaining := d
	if version >= 2 {
		if remaining, err = dc.ReadLong(); err != nil {
			return fmt.Errorf("reading remaining: %w", err)
		}
	}
	a.commit(f)
	a.duration = time.Duration(d)
	a.remaining = time.Duration(remaining)
	return nil
}
