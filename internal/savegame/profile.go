package savegame

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/zelda/internal/item"
	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/serialization"
	"github.com/udisondev/zelda/internal/status"
)

// Profile is the persistent state of one hero.
type Profile struct {
	Name     string
	Level    int
	Seed     int64
	Position int64
	// Auras are active auras that do not belong to an item.
	Auras     []status.Aura
	Equipment []*item.Item
}

// Capture snapshots a hero. Item auras are stored with their items. Auras
// applied by a proc of another active aura are transient and not stored:
// after a load the proc effect owns a fresh copy of its nested aura.
func Capture(hero *status.Statable, equipment []*item.Item) *Profile {
	p := &Profile{
		Name:      hero.Name(),
		Level:     hero.Level(),
		Equipment: slices.Clone(equipment),
	}
	if r := hero.Rand(); r != nil {
		p.Seed = r.Seed()
		p.Position = r.Position()
	}

	skip := make(map[status.Aura]bool)
	for _, it := range equipment {
		skip[it.Aura()] = true
	}
	active := hero.Auras().Auras()
	for _, a := range active {
		for _, e := range a.Effects() {
			if proc, ok := e.(*status.TimedStatusProcEffect); ok && proc.Aura() != nil {
				skip[proc.Aura()] = true
			}
		}
	}
	for _, a := range active {
		if !skip[a] {
			p.Auras = append(p.Auras, a)
		}
	}
	return p
}

// Restore builds a live hero from the profile: a fresh Statable with its
// RNG stream restored, items equipped and auras re-applied in saved order.
//
// Only decoded profiles can be restored. A profile straight from Capture
// still shares its auras and items with the captured hero; Restore rejects
// it with ErrLiveProfile before changing anything.
func (p *Profile) Restore() (*status.Statable, error) {
	if err := p.checkDetached(); err != nil {
		return nil, err
	}
	hero := status.NewStatable(p.Name, p.Level)
	hero.SetRand(rng.Restore(p.Seed, p.Position))

	var errs []error
	for _, it := range p.Equipment {
		if err := it.Equip(hero); err != nil {
			errs = append(errs, err)
		}
	}
	for _, a := range p.Auras {
		if err := hero.Auras().Add(a); err != nil {
			errs = append(errs, fmt.Errorf("restoring aura %s: %w", a.Name(), err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return hero, nil
}

func (p *Profile) checkDetached() error {
	for _, it := range p.Equipment {
		if it.IsEquipped() {
			return fmt.Errorf("item %s is worn by %s: %w", it.Name(), it.Owner().Name(), ErrLiveProfile)
		}
	}
	for _, a := range p.Auras {
		if a.IsEnabled() {
			return fmt.Errorf("aura %s is active on %s: %w", a.Name(), a.List().Owner().Name(), ErrLiveProfile)
		}
	}
	return nil
}

// Version 1: name, level, rng seed and position, auras, equipment.
const profileVersion = 1

// MarshalProfile encodes p as a versioned payload.
func MarshalProfile(p *Profile) ([]byte, error) {
	w := serialization.Get()
	defer w.Put()
	sc := status.NewSerializationContext(w)

	sc.WriteInt(profileVersion)
	sc.WriteString(p.Name)
	sc.WriteInt(int32(p.Level))
	sc.WriteLong(p.Seed)
	sc.WriteLong(p.Position)

	sc.WriteInt(int32(len(p.Auras)))
	for _, a := range p.Auras {
		if err := sc.WriteAura(a); err != nil {
			return nil, fmt.Errorf("aura %s: %w", a.Name(), err)
		}
	}
	sc.WriteInt(int32(len(p.Equipment)))
	for _, it := range p.Equipment {
		if err := it.Serialize(sc); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.Name(), err)
		}
	}
	return slices.Clone(w.Bytes()), nil
}

// UnmarshalProfile decodes a payload written by MarshalProfile.
func UnmarshalProfile(data []byte, reg *status.Registry, svc status.Services) (*Profile, error) {
	dc := status.NewDeserializationContext(serialization.NewReader(data), reg, svc)

	if _, err := dc.ReadVersion(1, profileVersion, "Profile"); err != nil {
		return nil, err
	}
	p := &Profile{}
	var err error
	if p.Name, err = dc.ReadString(); err != nil {
		return nil, fmt.Errorf("reading name: %w", err)
	}
	level, err := dc.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	if level < 0 {
		return nil, fmt.Errorf("level %d: %w", level, status.ErrInvalidArgument)
	}
	p.Level = int(level)
	if p.Seed, err = dc.ReadLong(); err != nil {
		return nil, fmt.Errorf("reading rng seed: %w", err)
	}
	if p.Position, err = dc.ReadLong(); err != nil {
		return nil, fmt.Errorf("reading rng position: %w", err)
	}
	if p.Position < 0 {
		return nil, fmt.Errorf("rng position %d: %w", p.Position, status.ErrInvalidArgument)
	}

	n, err := dc.ReadCount(4)
	if err != nil {
		return nil, fmt.Errorf("reading aura count: %w", err)
	}
	for i := 0; i < n; i++ {
		a, err := dc.ReadAura()
		if err != nil {
			return nil, fmt.Errorf("aura %d: %w", i, err)
		}
		p.Auras = append(p.Auras, a)
	}

	if n, err = dc.ReadCount(4); err != nil {
		return nil, fmt.Errorf("reading equipment count: %w", err)
	}
	for i := 0; i < n; i++ {
		it, err := item.Read(dc)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		p.Equipment = append(p.Equipment, it)
	}

	if dc.Remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after profile", dc.Remaining())
	}
	return p, nil
}
