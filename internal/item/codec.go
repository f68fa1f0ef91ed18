package item

import (
	"fmt"

	"github.com/udisondev/zelda/internal/serialization"
	"github.com/udisondev/zelda/internal/status"
)

const itemVersion = 1

// Serialize writes the item record. Equip state is not part of the record;
// the profile that owns the item re-equips it on load.
func (it *Item) Serialize(sc *status.SerializationContext) error {
	sc.WriteInt(itemVersion)
	sc.WriteString(it.name)
	sc.WriteInt(int32(it.level))
	sc.WriteInt(int32(it.slot))
	sc.WriteInt(int32(len(it.affixes)))
	for _, a := range it.affixes {
		sc.WriteString(a)
	}
	return sc.WriteAura(it.aura)
}

// Read loads an item record written by Serialize.
func Read(dc *status.DeserializationContext) (*Item, error) {
	if _, err := dc.ReadVersion(1, itemVersion, "Item"); err != nil {
		return nil, err
	}
	name, err := dc.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading item name: %w", err)
	}
	level, err := dc.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading level of %s: %w", name, err)
	}
	slot, err := dc.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading slot of %s: %w", name, err)
	}
	n, err := dc.ReadCount(4)
	if err != nil {
		return nil, fmt.Errorf("reading affix count of %s: %w", name, err)
	}
	affixes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		a, err := dc.ReadString()
		if err != nil {
			return nil, fmt.Errorf("reading affix %d of %s: %w", i, name, err)
		}
		affixes = append(affixes, a)
	}
	a, err := dc.ReadAura()
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", name, err)
	}
	aura, ok := a.(*status.PermanentAura)
	if !ok {
		return nil, fmt.Errorf("item %s carries %s, want PermanentAura: %w", name, a.TypeName(), status.ErrInvalidArgument)
	}

	it, err := NewItem(name, int(level), Slot(slot))
	if err != nil {
		return nil, err
	}
	it.affixes = affixes
	it.aura = aura
	return it, nil
}

// Marshal encodes a standalone item record.
func Marshal(it *Item) ([]byte, error) {
	w := serialization.Get()
	defer w.Put()
	if err := it.Serialize(status.NewSerializationContext(w)); err != nil {
		return nil, err
	}
	return append([]byte(nil), w.Bytes()...), nil
}

// Unmarshal decodes a standalone item record.
func Unmarshal(data []byte, reg *status.Registry, svc status.Services) (*Item, error) {
	return Read(status.NewDeserializationContext(serialization.NewReader(data), reg, svc))
}
