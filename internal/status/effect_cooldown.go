package status

import (
	"fmt"
	"time"
)

// Cooldown is a live per-entity timer, e.g. the recharge of a skill.
type Cooldown struct {
	name      string
	duration  time.Duration
	remaining time.Duration
	reduction float64 // percent
}

// NewCooldown creates a ready cooldown.
func NewCooldown(name string, duration time.Duration) *Cooldown {
	return &Cooldown{name: name, duration: duration}
}

// Name returns the cooldown name.
func (c *Cooldown) Name() string { return c.name }

// Effective returns the duration after reductions, never below zero.
func (c *Cooldown) Effective() time.Duration {
	f := 1 - c.reduction/100
	if f < 0 {
		f = 0
	}
	return time.Duration(float64(c.duration) * f)
}

// Trigger starts the cooldown.
func (c *Cooldown) Trigger() { c.remaining = c.Effective() }

// IsReady reports whether the cooldown elapsed.
func (c *Cooldown) IsReady() bool { return c.remaining <= 0 }

// Update advances the cooldown by elapsed.
func (c *Cooldown) Update(elapsed time.Duration) {
	if c.remaining > 0 {
		c.remaining -= elapsed
	}
}

// CooldownEffect shortens a live Cooldown by a percentage while enabled.
// It is bound to one entity's runtime state, so it implements neither
// Cloner nor Serializable.
type CooldownEffect struct {
	cooldown *Cooldown
	percent  float64
}

// NewCooldownEffect creates a CooldownEffect for cd.
func NewCooldownEffect(cd *Cooldown, percent float64) *CooldownEffect {
	return &CooldownEffect{cooldown: cd, percent: percent}
}

func (e *CooldownEffect) Identifier() string { return "Cooldown." + e.cooldown.name }

func (e *CooldownEffect) OnEnable(*Statable) error {
	e.cooldown.reduction += e.percent
	return nil
}

func (e *CooldownEffect) OnDisable(*Statable) error {
	e.cooldown.reduction -= e.percent
	return nil
}

func (e *CooldownEffect) Equals(other Effect) bool {
	o, ok := other.(*CooldownEffect)
	return ok && o.cooldown == e.cooldown
}

func (e *CooldownEffect) Description(*Statable) string {
	return fmt.Sprintf("-%s%% %s Cooldown", formatNumber(e.percent), e.cooldown.name)
}
