package data

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/udisondev/zelda/internal/status"
)

// EffectFactory builds an effect from a template entry.
type EffectFactory func(t EffectTemplate) (status.Effect, error)

// effectFactories maps effect type name → factory function.
var effectFactories = map[string]EffectFactory{}

// RegisterEffect registers an effect factory by type name.
func RegisterEffect(name string, factory EffectFactory) {
	effectFactories[name] = factory
}

// CreateEffect builds an effect by type name using the registered factory.
func CreateEffect(t EffectTemplate) (status.Effect, error) {
	factory, ok := effectFactories[t.Type]
	if !ok {
		return nil, fmt.Errorf("unknown effect type: %s", t.Type)
	}
	e, err := factory(t)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", t.Type, err)
	}
	return e, nil
}

// EffectTypes returns the registered effect type names in sorted order.
func EffectTypes() []string {
	names := make([]string, 0, len(effectFactories))
	for name := range effectFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterEffect("Stat", newStatEffect)
	RegisterEffect("MovementSpeed", newMovementSpeedEffect)
	RegisterEffect("AttackSpeed", newAttackSpeedEffect)
	RegisterEffect("ChanceTo", newChanceToEffect)
	RegisterEffect("TimedStatusProc", newTimedStatusProcEffect)
	RegisterEffect("HealProc", newHealProcEffect)
}

// params wraps the string parameters of one template entry.
type params map[string]string

func (p params) str(key string) (string, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return "", fmt.Errorf("missing param %q", key)
	}
	return v, nil
}

func (p params) float(key string) (float64, error) {
	v, err := p.str(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", key, err)
	}
	return f, nil
}

func (p params) floatOr(key string, def float64) (float64, error) {
	if _, ok := p[key]; !ok {
		return def, nil
	}
	return p.float(key)
}

func (p params) boolOr(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("param %q: %w", key, err)
	}
	return b, nil
}

// manip reads "manip", defaulting to Fixed.
func (p params) manip() (status.ManipType, error) {
	v, ok := p["manip"]
	if !ok {
		return status.ManipFixed, nil
	}
	return status.ParseManipType(v)
}

func (p params) attackOr(key string, def status.AttackType) (status.AttackType, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	return status.ParseAttackType(v)
}

func (p params) value() (float64, status.ManipType, error) {
	v, err := p.float("value")
	if err != nil {
		return 0, 0, err
	}
	m, err := p.manip()
	if err != nil {
		return 0, 0, err
	}
	return v, m, nil
}

// Params: "stat" (e.g. "Strength"), "value", "manip" (Fixed/Percental/Rating).
func newStatEffect(t EffectTemplate) (status.Effect, error) {
	p := params(t.Params)
	name, err := p.str("stat")
	if err != nil {
		return nil, err
	}
	stat, err := status.ParseStat(name)
	if err != nil {
		return nil, err
	}
	v, m, err := p.value()
	if err != nil {
		return nil, err
	}
	e, err := status.NewStatEffect(stat, v, m)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Params: "value", "manip".
func newMovementSpeedEffect(t EffectTemplate) (status.Effect, error) {
	v, m, err := params(t.Params).value()
	if err != nil {
		return nil, err
	}
	e, err := status.NewMovementSpeedEffect(v, m)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Params: "attack" (All/Melee/Ranged, default All), "value", "manip".
func newAttackSpeedEffect(t EffectTemplate) (status.Effect, error) {
	p := params(t.Params)
	attack, err := p.attackOr("attack", status.AttackAll)
	if err != nil {
		return nil, err
	}
	v, m, err := p.value()
	if err != nil {
		return nil, err
	}
	e, err := status.NewAttackSpeedEffect(attack, v, m)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Params: "status" (Crit/Dodge/...), "value", "manip".
func newChanceToEffect(t EffectTemplate) (status.Effect, error) {
	p := params(t.Params)
	name, err := p.str("status")
	if err != nil {
		return nil, err
	}
	kind, err := status.ParseChanceTo(name)
	if err != nil {
		return nil, err
	}
	v, m, err := p.value()
	if err != nil {
		return nil, err
	}
	e, err := status.NewChanceToStatusEffect(kind, v, m)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// procChance reads "chance" (flat percent) or "ppm" with "ppm_attack".
// Neither means every trigger procs.
func procChance(p params) (status.ProcChance, error) {
	_, hasChance := p["chance"]
	_, hasPPM := p["ppm"]
	switch {
	case hasChance && hasPPM:
		return nil, fmt.Errorf("params \"chance\" and \"ppm\" are exclusive")
	case hasChance:
		c, err := p.float("chance")
		if err != nil {
			return nil, err
		}
		return status.NewFixedProcChance(c)
	case hasPPM:
		ppm, err := p.float("ppm")
		if err != nil {
			return nil, err
		}
		attack, err := p.attackOr("ppm_attack", status.AttackMelee)
		if err != nil {
			return nil, err
		}
		return status.NewAttackSpeedProcChance(attack, ppm)
	default:
		return nil, nil
	}
}

// hook reads "hook" (attack/hurt/kill) and its options
// "hook_attack", "crit_only" and "min_damage".
func hook(p params) (status.Hook, error) {
	kind, err := p.str("hook")
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(kind) {
	case "attack":
		attack, err := p.attackOr("hook_attack", status.AttackAll)
		if err != nil {
			return nil, err
		}
		critOnly, err := p.boolOr("crit_only", false)
		if err != nil {
			return nil, err
		}
		h, err := status.NewAttackHook(attack, critOnly)
		if err != nil {
			return nil, err
		}
		return h, nil
	case "hurt":
		minDamage, err := p.floatOr("min_damage", 0)
		if err != nil {
			return nil, err
		}
		return status.NewHurtHook(minDamage), nil
	case "kill":
		return status.NewKillHook(), nil
	default:
		return nil, fmt.Errorf("unknown hook %q", kind)
	}
}

// Params: chance/ppm, hook params. The nested aura is given inline and must
// have a duration.
func newTimedStatusProcEffect(t EffectTemplate) (status.Effect, error) {
	p := params(t.Params)
	if t.Aura == nil {
		return nil, fmt.Errorf("missing nested aura")
	}
	if t.Aura.Duration <= 0 {
		return nil, fmt.Errorf("nested aura %s needs a duration", t.Aura.Name)
	}
	chance, err := procChance(p)
	if err != nil {
		return nil, err
	}
	h, err := hook(p)
	if err != nil {
		return nil, err
	}
	a, err := t.Aura.Build()
	if err != nil {
		return nil, err
	}
	return status.NewTimedStatusProcEffect(chance, h, a.(*status.TimedAura)), nil
}

// Params: chance/ppm, hook params, "amount".
func newHealProcEffect(t EffectTemplate) (status.Effect, error) {
	p := params(t.Params)
	chance, err := procChance(p)
	if err != nil {
		return nil, err
	}
	h, err := hook(p)
	if err != nil {
		return nil, err
	}
	amount, err := p.float("amount")
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0, got %v", amount)
	}
	return status.NewHealProcEffect(chance, h, amount), nil
}
