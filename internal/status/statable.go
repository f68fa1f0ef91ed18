package status

import (
	"math"

	"github.com/udisondev/zelda/internal/rng"
)

const (
	minAttackSpeed = 0.05 // seconds per attack

	// Rating points needed for one percent at level 0, and the growth per level.
	ratingBase     = 8.0
	ratingPerLevel = 0.4
)

// AttackEvent describes an outgoing attack that landed.
type AttackEvent struct {
	Target *Statable
	Attack AttackType // Melee or Ranged
	Crit   bool
	Damage float64
}

// HurtEvent describes incoming damage.
type HurtEvent struct {
	Source *Statable
	Damage float64
}

// KillEvent describes a killing blow dealt by the owner.
type KillEvent struct {
	Victim *Statable
}

// Statable is the entity component that exposes combat stats and events.
// Effects modify it through modifiers; hooks subscribe to its events.
type Statable struct {
	name  string
	level int

	base [statCount]float64
	life float64

	modifiers []Modifier
	totals    [statCount]statTotals
	dirty     bool

	auras *AuraList
	rand  *rng.Rand

	attacked Event[AttackEvent]
	hurt     Event[HurtEvent]
	killed   Event[KillEvent]
}

// NewStatable creates a Statable with default base stats and full life.
// Negative levels are clamped to 0.
func NewStatable(name string, level int) *Statable {
	s := &Statable{
		name:  name,
		level: max(level, 0),
	}
	s.base = [statCount]float64{
		StatStrength:          5,
		StatDexterity:         5,
		StatAgility:           5,
		StatVitality:          5,
		StatIntelligence:      5,
		StatLuck:              5,
		StatMaxLife:           100,
		StatMaxMana:           50,
		StatArmor:             10,
		StatMovementSpeed:     60,
		StatMeleeAttackSpeed:  1.0,
		StatRangedAttackSpeed: 1.5,
		StatChanceToCrit:      5,
		StatChanceToDodge:     3,
		StatChanceToMiss:      5,
	}
	s.life = s.base[StatMaxLife]
	s.auras = newAuraList(s)
	return s
}

// Name returns the diagnostic name.
func (s *Statable) Name() string { return s.name }

// Level returns the entity level.
func (s *Statable) Level() int { return s.level }

// SetLevel changes the level, clamped to 0. Rating conversions depend on it.
func (s *Statable) SetLevel(level int) {
	s.level = max(level, 0)
}

// Auras returns the aura list owned by this entity.
func (s *Statable) Auras() *AuraList { return s.auras }

// Rand returns the scene RNG stream, or nil if the entity is not in a scene.
func (s *Statable) Rand() *rng.Rand { return s.rand }

// SetRand binds the scene RNG stream.
func (s *Statable) SetRand(r *rng.Rand) { s.rand = r }

// Base returns the unmodified value of stat.
func (s *Statable) Base(stat Stat) float64 {
	if !stat.Valid() {
		return 0
	}
	return s.base[stat]
}

// SetBase sets the unmodified value of stat.
func (s *Statable) SetBase(stat Stat, v float64) {
	if !stat.Valid() {
		return
	}
	s.base[stat] = v
}

// AddModifier appends a contribution.
func (s *Statable) AddModifier(m Modifier) {
	s.modifiers = append(s.modifiers, m)
	s.dirty = true
}

// RemoveModifiers removes every contribution registered by source.
// Returns the number removed.
func (s *Statable) RemoveModifiers(source any) int {
	n := 0
	removed := 0
	for _, m := range s.modifiers {
		if m.Source == source {
			removed++
			continue
		}
		s.modifiers[n] = m
		n++
	}
	clear(s.modifiers[n:])
	s.modifiers = s.modifiers[:n]
	if removed > 0 {
		s.dirty = true
	}
	return removed
}

// UpdateModifier changes the value of every contribution registered by
// source, keeping its position.
func (s *Statable) UpdateModifier(source any, value float64) {
	for i := range s.modifiers {
		if s.modifiers[i].Source == source {
			s.modifiers[i].Value = value
			s.dirty = true
		}
	}
}

// ModifierCount returns the number of active contributions.
func (s *Statable) ModifierCount() int {
	return len(s.modifiers)
}

// RatingToPercent converts rating points to percent at the entity's level.
func (s *Statable) RatingToPercent(rating float64) float64 {
	return rating / (ratingBase + ratingPerLevel*float64(s.level))
}

// Get returns the derived value of stat.
//
// Chance stats add every contribution as percentage points. Attack speeds are
// seconds per attack: fixed values subtract seconds and percentages divide,
// so positive values always mean faster. Every other stat is
// (base + fixed) * (1 + percent/100).
func (s *Statable) Get(stat Stat) float64 {
	if !stat.Valid() {
		return 0
	}
	s.rebuild()

	t := s.totals[stat]
	pct := t.percent + s.RatingToPercent(t.rating)
	switch {
	case stat.isChance():
		return s.base[stat] + t.fixed + pct
	case stat.isAttackSpeed():
		mul := 1 + pct/100
		if mul <= 0 {
			return math.Inf(1)
		}
		return math.Max(minAttackSpeed, (s.base[stat]-t.fixed)/mul)
	default:
		return (s.base[stat] + t.fixed) * (1 + pct/100)
	}
}

// AttackSpeed returns seconds per attack for melee or ranged attacks.
// AttackAll reports the melee value.
func (s *Statable) AttackSpeed(attack AttackType) float64 {
	if attack == AttackRanged {
		return s.Get(StatRangedAttackSpeed)
	}
	return s.Get(StatMeleeAttackSpeed)
}

// rebuild recalculates totals from the ordered modifier list.
// Summing from scratch keeps enable/disable exactly symmetric.
func (s *Statable) rebuild() {
	if !s.dirty {
		return
	}
	s.totals = [statCount]statTotals{}
	for _, m := range s.modifiers {
		if !m.Stat.Valid() {
			continue
		}
		t := &s.totals[m.Stat]
		switch m.Type {
		case ManipFixed:
			t.fixed += m.Value
		case ManipPercental:
			t.percent += m.Value
		case ManipRating:
			t.rating += m.Value
		}
	}
	s.dirty = false
}

// Life returns current life.
func (s *Statable) Life() float64 { return s.life }

// IsDead reports whether life reached zero.
func (s *Statable) IsDead() bool { return s.life <= 0 }

// Heal restores life up to MaxLife and returns the amount restored.
func (s *Statable) Heal(amount float64) float64 {
	if amount <= 0 || s.IsDead() {
		return 0
	}
	maxLife := s.Get(StatMaxLife)
	before := s.life
	s.life = math.Min(maxLife, s.life+amount)
	return s.life - before
}

// Damage reduces life (not below zero) and raises Hurt.
func (s *Statable) Damage(source *Statable, amount float64) {
	if amount <= 0 || s.IsDead() {
		return
	}
	s.life = math.Max(0, s.life-amount)
	s.hurt.Raise(HurtEvent{Source: source, Damage: amount})
}

// Attacked is raised after an outgoing attack of this entity landed.
func (s *Statable) Attacked() *Event[AttackEvent] { return &s.attacked }

// Hurt is raised when this entity takes damage.
func (s *Statable) Hurt() *Event[HurtEvent] { return &s.hurt }

// Killed is raised when this entity dealt a killing blow.
func (s *Statable) Killed() *Event[KillEvent] { return &s.killed }

// NotifyAttack applies an attack's damage to its target and raises the
// combat events on both sides.
func (s *Statable) NotifyAttack(ev AttackEvent) {
	if ev.Target != nil {
		wasAlive := !ev.Target.IsDead()
		ev.Target.Damage(s, ev.Damage)
		s.attacked.Raise(ev)
		if wasAlive && ev.Target.IsDead() {
			s.killed.Raise(KillEvent{Victim: ev.Target})
		}
		return
	}
	s.attacked.Raise(ev)
}
