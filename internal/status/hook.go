package status

import (
	"fmt"
	"strings"
)

// Hook binds a proc effect to one combat event stream of a Statable and
// re-raises matching events as a uniform Invoked notification carrying the
// invoking entity.
//
// Hook and Unhook are paired 1:1 with the owning effect's enable/disable.
type Hook interface {
	Serializable
	Hook(target *Statable) error
	Unhook()
	IsHooked() bool
	Invoked() *Event[*Statable]
	Clone() Hook
	Description() string
}

// hookCore tracks the bound target and the subscription on it.
type hookCore struct {
	target  *Statable
	sub     Subscription
	invoked Event[*Statable]
}

// Invoked is raised with the hooked Statable whenever the event matches.
func (h *hookCore) Invoked() *Event[*Statable] { return &h.invoked }

// IsHooked reports whether the hook is bound to a target.
func (h *hookCore) IsHooked() bool { return h.target != nil }

func (h *hookCore) bind(target *Statable, subscribe func(*Statable) Subscription) error {
	if target == nil {
		return fmt.Errorf("hooking nil target: %w", ErrInvalidArgument)
	}
	if h.target != nil {
		return ErrAlreadyHooked
	}
	h.target = target
	h.sub = subscribe(target)
	return nil
}

func (h *hookCore) release(unsubscribe func(*Statable, Subscription)) {
	if h.target == nil {
		return
	}
	unsubscribe(h.target, h.sub)
	h.target = nil
	h.sub = 0
}

// AttackHook fires when the target lands an attack of the configured kind,
// optionally only on critical hits ("on melee hit", "on ranged crit").
type AttackHook struct {
	hookCore
	attack   AttackType
	critOnly bool
}

// NewAttackHook creates an AttackHook.
func NewAttackHook(attack AttackType, critOnly bool) (*AttackHook, error) {
	if !attack.Valid() {
		return nil, fmt.Errorf("attack type %d: %w", attack, ErrInvalidArgument)
	}
	return &AttackHook{attack: attack, critOnly: critOnly}, nil
}

// AttackType returns the attack kinds that fire the hook.
func (h *AttackHook) AttackType() AttackType { return h.attack }

// CritOnly reports whether only critical hits fire the hook.
func (h *AttackHook) CritOnly() bool { return h.critOnly }

func (h *AttackHook) TypeName() string { return "AttackHook" }

func (h *AttackHook) Hook(target *Statable) error {
	return h.bind(target, func(t *Statable) Subscription {
		return t.Attacked().Subscribe(h.onAttack)
	})
}

func (h *AttackHook) Unhook() {
	h.release(func(t *Statable, sub Subscription) { t.Attacked().Unsubscribe(sub) })
}

func (h *AttackHook) onAttack(ev AttackEvent) {
	if !h.attack.Matches(ev.Attack) || (h.critOnly && !ev.Crit) {
		return
	}
	h.invoked.Raise(h.target)
}

func (h *AttackHook) Clone() Hook {
	return &AttackHook{attack: h.attack, critOnly: h.critOnly}
}

func (h *AttackHook) Description() string {
	kind := "hit"
	if h.critOnly {
		kind = "critical hit"
	}
	if h.attack == AttackAll {
		return "on " + kind
	}
	return fmt.Sprintf("on %s %s", strings.ToLower(h.attack.String()), kind)
}

const attackHookVersion = 1

func (h *AttackHook) Serialize(sc *SerializationContext) error {
	if !h.attack.Valid() {
		return fmt.Errorf("attack type %d: %w", h.attack, ErrInvalidArgument)
	}
	sc.WriteInt(attackHookVersion)
	if err := sc.WriteByte(byte(h.attack)); err != nil {
		return err
	}
	sc.WriteBool(h.critOnly)
	return nil
}

func (h *AttackHook) Deserialize(dc *DeserializationContext) error {
	if _, err := dc.ReadVersion(1, attackHookVersion, h.TypeName()); err != nil {
		return err
	}
	b, err := dc.ReadByte()
	if err != nil {
		return fmt.Errorf("reading attack type: %w", err)
	}
	attack, err := attackFromByte(b)
	if err != nil {
		return err
	}
	critOnly, err := dc.ReadBool()
	if err != nil {
		return fmt.Errorf("reading crit flag: %w", err)
	}
	h.attack = attack
	h.critOnly = critOnly
	return nil
}

// HurtHook fires when the target takes at least MinDamage damage.
type HurtHook struct {
	hookCore
	minDamage float64
}

// NewHurtHook creates a HurtHook.
func NewHurtHook(minDamage float64) *HurtHook {
	return &HurtHook{minDamage: minDamage}
}

func (h *HurtHook) TypeName() string { return "HurtHook" }

func (h *HurtHook) Hook(target *Statable) error {
	return h.bind(target, func(t *Statable) Subscription {
		return t.Hurt().Subscribe(h.onHurt)
	})
}

func (h *HurtHook) Unhook() {
	h.release(func(t *Statable, sub Subscription) { t.Hurt().Unsubscribe(sub) })
}

func (h *HurtHook) onHurt(ev HurtEvent) {
	if ev.Damage < h.minDamage {
		return
	}
	h.invoked.Raise(h.target)
}

func (h *HurtHook) Clone() Hook {
	return &HurtHook{minDamage: h.minDamage}
}

func (h *HurtHook) Description() string {
	if h.minDamage > 0 {
		return fmt.Sprintf("when hit for %s or more damage", formatNumber(h.minDamage))
	}
	return "when hit"
}

const hurtHookVersion = 1

func (h *HurtHook) Serialize(sc *SerializationContext) error {
	sc.WriteInt(hurtHookVersion)
	sc.WriteDouble(h.minDamage)
	return nil
}

func (h *HurtHook) Deserialize(dc *DeserializationContext) error {
	if _, err := dc.ReadVersion(1, hurtHookVersion, h.TypeName()); err != nil {
		return err
	}
	minDamage, err := dc.ReadDouble()
	if err != nil {
		return fmt.Errorf("reading min damage: %w", err)
	}
	h.minDamage = minDamage
	return nil
}

// KillHook fires when the target deals a killing blow.
type KillHook struct {
	hookCore
}

// NewKillHook creates a KillHook.
func NewKillHook() *KillHook { return &KillHook{} }

func (h *KillHook) TypeName() string { return "KillHook" }

func (h *KillHook) Hook(target *Statable) error {
	return h.bind(target, func(t *Statable) Subscription {
		return t.Killed().Subscribe(func(KillEvent) { h.invoked.Raise(h.target) })
	})
}

func (h *KillHook) Unhook() {
	h.release(func(t *Statable, sub Subscription) { t.Killed().Unsubscribe(sub) })
}

func (h *KillHook) Clone() Hook { return &KillHook{} }

func (h *KillHook) Description() string { return "on kill" }

const killHookVersion = 1

func (h *KillHook) Serialize(sc *SerializationContext) error {
	sc.WriteInt(killHookVersion)
	return nil
}

func (h *KillHook) Deserialize(dc *DeserializationContext) error {
	_, err := dc.ReadVersion(1, killHookVersion, h.TypeName())
	return err
}
