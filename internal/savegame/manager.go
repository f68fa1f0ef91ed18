package savegame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/zelda/internal/status"
)

const tracerName = "github.com/udisondev/zelda/internal/savegame"

// Manager is the load/save boundary: it encodes profiles into save files,
// hands them to a Store and injects runtime services on load.
type Manager struct {
	store    Store
	registry *status.Registry
	services status.Services
	tracer   trace.Tracer
}

// NewManager creates a Manager. The registry is validated once here.
func NewManager(store Store, reg *status.Registry, svc status.Services) (*Manager, error) {
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid type registry: %w", err)
	}
	return &Manager{
		store:    store,
		registry: reg,
		services: svc,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// Save encodes p and writes it to slot. Nothing is written if encoding fails.
func (m *Manager) Save(ctx context.Context, slot string, p *Profile) (err error) {
	ctx, span := m.tracer.Start(ctx, "savegame.Save", trace.WithAttributes(attribute.String("slot", slot)))
	defer func() { endSpan(span, err) }()

	payload, err := MarshalProfile(p)
	if err != nil {
		slog.Error("encoding save", "slot", slot, "profile", p.Name, "err", err)
		return fmt.Errorf("encoding slot %s: %w", slot, err)
	}
	data := Encode(payload)
	span.SetAttributes(attribute.Int("bytes", len(data)))

	if err := m.store.Put(ctx, slot, data); err != nil {
		slog.Error("writing save", "slot", slot, "err", err)
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}

	slog.Info("game saved", "slot", slot, "profile", p.Name, "auras", len(p.Auras), "items", len(p.Equipment))
	return nil
}

// Load reads and decodes slot. The result is not applied to any live
// entity; call Profile.Restore for that.
func (m *Manager) Load(ctx context.Context, slot string) (p *Profile, err error) {
	ctx, span := m.tracer.Start(ctx, "savegame.Load", trace.WithAttributes(attribute.String("slot", slot)))
	defer func() { endSpan(span, err) }()

	data, err := m.store.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			slog.Error("reading save", "slot", slot, "err", err)
		}
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	span.SetAttributes(attribute.Int("bytes", len(data)))

	p, err = m.decode(data)
	if err != nil {
		slog.Error("decoding save", "slot", slot, "err", err)
		return nil, fmt.Errorf("decoding slot %s: %w", slot, err)
	}

	slog.Info("game loaded", "slot", slot, "profile", p.Name)
	return p, nil
}

// Verify checks that slot decodes cleanly and that the profile can be
// restored onto a fresh hero.
func (m *Manager) Verify(ctx context.Context, slot string) error {
	p, err := m.Load(ctx, slot)
	if err != nil {
		return err
	}
	if _, err := p.Restore(); err != nil {
		return fmt.Errorf("restoring slot %s: %w", slot, err)
	}
	return nil
}

// Delete removes slot from the store.
func (m *Manager) Delete(ctx context.Context, slot string) error {
	if err := m.store.Delete(ctx, slot); err != nil {
		return fmt.Errorf("deleting slot %s: %w", slot, err)
	}
	slog.Info("save deleted", "slot", slot)
	return nil
}

// Slots lists the stored saves.
func (m *Manager) Slots(ctx context.Context) ([]SlotInfo, error) {
	infos, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	return infos, nil
}

func (m *Manager) decode(data []byte) (*Profile, error) {
	payload, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return UnmarshalProfile(payload, m.registry, m.services)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
