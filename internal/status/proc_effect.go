package status

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/zelda/internal/rng"
)

// ProcEffect is the shared part of effects that fire on a hooked combat
// event. It owns an optional ProcChance and an optional Hook. Variants embed
// it and pass their OnProcced to enable.
type ProcEffect struct {
	chance   ProcChance
	hook     Hook
	fallback *rng.Rand
	sub      Subscription
}

// ProcChance returns the configured chance, or nil (always procs).
func (p *ProcEffect) ProcChance() ProcChance { return p.chance }

// SetProcChance sets the chance. nil means every invocation procs.
func (p *ProcEffect) SetProcChance(c ProcChance) { p.chance = c }

// Hook returns the configured hook, or nil.
func (p *ProcEffect) Hook() Hook { return p.hook }

// SetHook sets the hook. It must not be changed while the effect is enabled.
func (p *ProcEffect) SetHook(h Hook) error {
	if p.hook != nil && p.hook.IsHooked() {
		return fmt.Errorf("replacing a bound hook: %w", ErrNotSupported)
	}
	p.hook = h
	return nil
}

// Setup receives the fallback RNG used when the invoker is not in a scene.
func (p *ProcEffect) Setup(s Services) {
	p.fallback = s.Rand
}

// HasProcced rolls the chance for invoker using its scene RNG stream.
// Without a ProcChance every invocation procs; without any RNG stream a
// configured chance never procs.
func (p *ProcEffect) HasProcced(invoker *Statable) bool {
	if p.chance == nil {
		return true
	}
	r := invoker.Rand()
	if r == nil {
		r = p.fallback
	}
	if r == nil {
		return false
	}
	return p.chance.TryProc(invoker, r)
}

func (p *ProcEffect) enable(user *Statable, onProcced func(invoker *Statable)) error {
	if p.hook == nil {
		return nil
	}
	if err := p.hook.Hook(user); err != nil {
		return fmt.Errorf("hooking %s: %w", p.hook.TypeName(), err)
	}
	p.sub = p.hook.Invoked().Subscribe(func(invoker *Statable) {
		if p.HasProcced(invoker) {
			onProcced(invoker)
		}
	})
	return nil
}

func (p *ProcEffect) disable() {
	if p.hook == nil {
		return
	}
	p.hook.Invoked().Unsubscribe(p.sub)
	p.sub = 0
	p.hook.Unhook()
}

func (p *ProcEffect) cloneProc() ProcEffect {
	c := ProcEffect{fallback: p.fallback}
	if p.chance != nil {
		c.chance = p.chance.Clone()
	}
	if p.hook != nil {
		c.hook = p.hook.Clone()
	}
	return c
}

func (p *ProcEffect) describeTrigger() string {
	trigger := "always"
	if p.hook != nil {
		trigger = p.hook.Description()
	}
	if p.chance != nil {
		return p.chance.Description() + " " + trigger
	}
	return trigger
}

const procEffectVersion = 1

func (p *ProcEffect) serializeProc(sc *SerializationContext) error {
	sc.WriteInt(procEffectVersion)
	if err := sc.WriteProcChance(p.chance); err != nil {
		return err
	}
	return sc.WriteHook(p.hook)
}

type procFields struct {
	chance ProcChance
	hook   Hook
}

func readProcFields(dc *DeserializationContext) (procFields, error) {
	var f procFields
	if _, err := dc.ReadVersion(1, procEffectVersion, "ProcEffect"); err != nil {
		return f, err
	}
	var err error
	if f.chance, err = dc.ReadProcChance(); err != nil {
		return f, err
	}
	if f.hook, err = dc.ReadHook(); err != nil {
		return f, err
	}
	return f, nil
}

func (p *ProcEffect) commit(f procFields) {
	p.chance = f.chance
	p.hook = f.hook
}

// TimedStatusProcEffect applies a nested TimedAura to the invoker when it
// procs. A proc while the aura is active only refreshes its countdown.
type TimedStatusProcEffect struct {
	ProcEffect
	aura *TimedAura
}

// NewTimedStatusProcEffect creates the effect. chance and hook may be nil.
func NewTimedStatusProcEffect(chance ProcChance, hook Hook, aura *TimedAura) *TimedStatusProcEffect {
	return &TimedStatusProcEffect{
		ProcEffect: ProcEffect{chance: chance, hook: hook},
		aura:       aura,
	}
}

// Aura returns the nested aura.
func (e *TimedStatusProcEffect) Aura() *TimedAura { return e.aura }

func (e *TimedStatusProcEffect) TypeName() string { return "TimedStatusProcEffect" }

func (e *TimedStatusProcEffect) Identifier() string {
	if e.aura == nil {
		return "Proc"
	}
	return "Proc." + e.aura.Name()
}

func (e *TimedStatusProcEffect) OnEnable(user *Statable) error {
	return e.enable(user, e.OnProcced)
}

func (e *TimedStatusProcEffect) OnDisable(*Statable) error {
	e.disable()
	return nil
}

// OnProcced restarts the nested aura's countdown and adds it to the
// invoker's list unless it is already enabled.
func (e *TimedStatusProcEffect) OnProcced(invoker *Statable) {
	if e.aura == nil {
		return
	}
	e.aura.ResetDuration()
	if e.aura.IsEnabled() {
		slog.Debug("proc refreshed", "aura", e.aura.Name(), "invoker", invoker.Name())
		return
	}
	if err := invoker.Auras().Add(e.aura); err != nil {
		slog.Warn("proc aura not applied", "aura", e.aura.Name(), "invoker", invoker.Name(), "err", err)
		return
	}
	slog.Debug("proc applied", "aura", e.aura.Name(), "invoker", invoker.Name())
}

func (e *TimedStatusProcEffect) Equals(other Effect) bool {
	o, ok := other.(*TimedStatusProcEffect)
	if !ok {
		return false
	}
	if e.aura == nil || o.aura == nil {
		return e.aura == o.aura
	}
	return o.aura.Name() == e.aura.Name()
}

func (e *TimedStatusProcEffect) Description(user *Statable) string {
	if e.aura == nil {
		return e.describeTrigger()
	}
	desc := fmt.Sprintf("%s: %s for %s", e.describeTrigger(), e.aura.Name(), e.aura.Duration())
	for _, line := range Describe(e.aura, user) {
		desc += "\n  " + line
	}
	return desc
}

func (e *TimedStatusProcEffect) Clone() (Effect, error) {
	c := &TimedStatusProcEffect{ProcEffect: e.cloneProc()}
	if e.aura != nil {
		a, err := e.aura.Clone()
		if err != nil {
			return nil, err
		}
		c.aura = a
	}
	return c, nil
}

const timedStatusProcEffectVersion = 1

func (e *TimedStatusProcEffect) Serialize(sc *SerializationContext) error {
	if e.aura == nil {
		return fmt.Errorf("serializing %s without aura: %w", e.TypeName(), ErrInvalidArgument)
	}
	if err := e.serializeProc(sc); err != nil {
		return err
	}
	sc.WriteInt(timedStatusProcEffectVersion)
	return sc.WriteAura(e.aura)
}

func (e *TimedStatusProcEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readProcFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, timedStatusProcEffectVersion, e.TypeName()); err != nil {
		return err
	}
	a, err := dc.ReadAura()
	if err != nil {
		return err
	}
	timed, ok := a.(*TimedAura)
	if !ok {
		return fmt.Errorf("proc aura is %s, want TimedAura: %w", a.TypeName(), ErrInvalidArgument)
	}
	e.ProcEffect.commit(base)
	e.aura = timed
	return nil
}

// HealProcEffect heals the invoker by a fixed amount when it procs.
type HealProcEffect struct {
	ProcEffect
	amount float64
}

// NewHealProcEffect creates the effect. chance and hook may be nil.
func NewHealProcEffect(chance ProcChance, hook Hook, amount float64) *HealProcEffect {
	return &HealProcEffect{
		ProcEffect: ProcEffect{chance: chance, hook: hook},
		amount:     amount,
	}
}

// Amount returns the life restored per proc.
func (e *HealProcEffect) Amount() float64 { return e.amount }

func (e *HealProcEffect) TypeName() string { return "HealProcEffect" }

func (e *HealProcEffect) Identifier() string { return "Proc.Heal" }

func (e *HealProcEffect) OnEnable(user *Statable) error {
	return e.enable(user, e.OnProcced)
}

func (e *HealProcEffect) OnDisable(*Statable) error {
	e.disable()
	return nil
}

// OnProcced heals the invoker.
func (e *HealProcEffect) OnProcced(invoker *Statable) {
	healed := invoker.Heal(e.amount)
	slog.Debug("heal proc", "invoker", invoker.Name(), "healed", healed)
}

func (e *HealProcEffect) Equals(other Effect) bool {
	_, ok := other.(*HealProcEffect)
	return ok
}

func (e *HealProcEffect) Description(*Statable) string {
	return fmt.Sprintf("%s: restore %s life", e.describeTrigger(), formatNumber(e.amount))
}

func (e *HealProcEffect) Clone() (Effect, error) {
	return &HealProcEffect{ProcEffect: e.cloneProc(), amount: e.amount}, nil
}

const healProcEffectVersion = 1

func (e *HealProcEffect) Serialize(sc *SerializationContext) error {
	if err := e.serializeProc(sc); err != nil {
		return err
	}
	sc.WriteInt(healProcEffectVersion)
	sc.WriteDouble(e.amount)
	return nil
}

func (e *HealProcEffect) Deserialize(dc *DeserializationContext) error {
	base, err := readProcFields(dc)
	if err != nil {
		return err
	}
	if _, err := dc.ReadVersion(1, healProcEffectVersion, e.TypeName()); err != nil {
		return err
	}
	amount, err := dc.ReadDouble()
	if err != nil {
		return fmt.Errorf("reading amount: %w", err)
	}
	e.ProcEffect.commit(base)
	e.amount = amount
	return nil
}
