package data

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/zelda/internal/status"
)

// EffectTemplate describes one effect of an aura template.
type EffectTemplate struct {
	Type   string            `yaml:"type"`
	Params map[string]string `yaml:"params"`
	// Aura is the nested aura of proc effects that apply one.
	Aura *AuraTemplate `yaml:"aura,omitempty"`
}

// AuraTemplate describes an aura. A positive Duration builds a TimedAura,
// otherwise a PermanentAura.
type AuraTemplate struct {
	Name     string           `yaml:"name"`
	Symbol   string           `yaml:"symbol"`
	Color    string           `yaml:"color"` // "#RRGGBB" or "#RRGGBBAA"
	Duration time.Duration    `yaml:"duration"`
	Effects  []EffectTemplate `yaml:"effects"`
}

// Build creates a fresh, unattached aura from the template.
func (t AuraTemplate) Build() (status.Aura, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("aura template without name")
	}
	color, err := ParseColor(t.Color)
	if err != nil {
		return nil, fmt.Errorf("aura %s: %w", t.Name, err)
	}

	effects := make([]status.Effect, 0, len(t.Effects))
	for i, et := range t.Effects {
		e, err := CreateEffect(et)
		if err != nil {
			return nil, fmt.Errorf("aura %s effect %d: %w", t.Name, i, err)
		}
		effects = append(effects, e)
	}

	if t.Duration > 0 {
		a := status.NewTimedAura(t.Name, t.Duration, effects...)
		a.SetSymbol(t.Symbol, color)
		return a, nil
	}
	if t.Duration < 0 {
		return nil, fmt.Errorf("aura %s: negative duration %s", t.Name, t.Duration)
	}
	a := status.NewPermanentAura(t.Name, effects...)
	a.SetSymbol(t.Symbol, color)
	return a, nil
}

// ParseColor parses "#RRGGBB" (opaque) or "#RRGGBBAA". Empty means white.
func ParseColor(s string) (status.Color, error) {
	if s == "" {
		return 0xFFFFFFFF, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return status.Color(v), nil
}

// Table holds aura templates by name.
type Table map[string]AuraTemplate

// Build creates a fresh aura from the named template.
func (t Table) Build(name string) (status.Aura, error) {
	tmpl, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("unknown aura template: %s", name)
	}
	return tmpl.Build()
}

// Names returns the template names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type templateFile struct {
	Auras []AuraTemplate `yaml:"auras"`
}

// ParseAuraTemplates decodes a YAML template document. Every template is
// built once so configuration errors surface at load time.
func ParseAuraTemplates(data []byte) (Table, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing aura templates: %w", err)
	}

	table := make(Table, len(f.Auras))
	for _, tmpl := range f.Auras {
		if _, dup := table[tmpl.Name]; dup {
			return nil, fmt.Errorf("duplicate aura template: %s", tmpl.Name)
		}
		if _, err := tmpl.Build(); err != nil {
			return nil, err
		}
		table[tmpl.Name] = tmpl
	}
	return table, nil
}

// LoadAuraTemplates reads and validates a YAML template file.
func LoadAuraTemplates(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading aura templates: %w", err)
	}
	table, err := ParseAuraTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("loaded aura templates", "path", path, "count", len(table))
	return table, nil
}

//go:embed auras.yaml
var builtinAuras []byte

// BuiltinAuraTemplates returns the templates shipped with the game.
func BuiltinAuraTemplates() (Table, error) {
	return ParseAuraTemplates(builtinAuras)
}
