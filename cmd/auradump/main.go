package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/udisondev/zelda/internal/config"
	"github.com/udisondev/zelda/internal/data"
	"github.com/udisondev/zelda/internal/item"
	"github.com/udisondev/zelda/internal/rng"
	"github.com/udisondev/zelda/internal/savegame"
	"github.com/udisondev/zelda/internal/status"
	"github.com/udisondev/zelda/internal/storage"
)

const ConfigPath = "config/zelda.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	level := flag.Int("level", 20, "level of the sample hero")
	saveSlot := flag.String("save", "", "save a demo hero wearing sample items into this slot")
	flag.Parse()

	cfgPath := ConfigPath
	if p := os.Getenv("ZELDA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	table, err := loadTemplates(cfg.Templates)
	if err != nil {
		return err
	}

	names := table.Names()
	if flag.NArg() > 0 {
		names = flag.Args()
	}
	for _, name := range names {
		if err := dumpAura(table, name, *level); err != nil {
			return err
		}
	}

	if *saveSlot != "" {
		return saveDemo(ctx, cfg, *saveSlot, *level)
	}
	return nil
}

func loadTemplates(path string) (data.Table, error) {
	if path == "" {
		return data.BuiltinAuraTemplates()
	}
	return data.LoadAuraTemplates(path)
}

// dumpAura enables the named aura on a fresh hero and prints its
// descriptions together with the stats it changed.
func dumpAura(table data.Table, name string, level int) error {
	aura, err := table.Build(name)
	if err != nil {
		return err
	}

	hero := status.NewStatable("Sample", level)
	before := snapshot(hero)
	if err := hero.Auras().Add(aura); err != nil {
		return fmt.Errorf("enabling %s: %w", name, err)
	}

	var b strings.Builder
	b.WriteString(titleStyle(aura.SymbolColor()).Render(aura.Name()))
	if t, ok := aura.(*status.TimedAura); ok {
		b.WriteString(metaStyle.Render(fmt.Sprintf("  [%s] %s", aura.Symbol(), t.Duration())))
	} else if aura.Symbol() != "" {
		b.WriteString(metaStyle.Render(fmt.Sprintf("  [%s]", aura.Symbol())))
	}
	b.WriteByte('\n')
	for _, line := range status.Describe(aura, hero) {
		b.WriteString(lineStyle.Render(line))
		b.WriteByte('\n')
	}
	for i, was := range before {
		st := status.Stat(i)
		if after := hero.Get(st); after != was {
			b.WriteString(lineStyle.Render(statStyle.Render(fmt.Sprintf("%s %.2f -> %.2f", st, was, after))))
			b.WriteByte('\n')
		}
	}
	fmt.Println(b.String())

	return hero.Auras().Clear()
}

func snapshot(s *status.Statable) []float64 {
	var out []float64
	for st := status.Stat(0); st.Valid(); st++ {
		out = append(out, s.Get(st))
	}
	return out
}

func saveDemo(ctx context.Context, cfg config.Game, slot string, level int) error {
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := status.Services{Rand: rng.New(cfg.Seed)}
	mgr, err := savegame.NewManager(store, status.NewRegistry(), svc)
	if err != nil {
		return err
	}

	hero := status.NewStatable("Link", level)
	hero.SetRand(rng.New(cfg.Seed))

	equipment, err := demoEquipment(hero, level)
	if err != nil {
		return err
	}
	if err := mgr.Save(ctx, slot, savegame.Capture(hero, equipment)); err != nil {
		return err
	}
	fmt.Println(headerStyle.Render("saved " + slot))
	return nil
}

func demoEquipment(hero *status.Statable, level int) ([]*item.Item, error) {
	specs := []struct {
		name  string
		slot  item.Slot
		affix []item.Affix
	}{
		{"Dagger", item.SlotWeapon, []item.Affix{item.ImpetuousPrefix{}, item.OfTheFoxSuffix{}}},
		{"Boots", item.SlotFeet, []item.Affix{item.SwiftSuffix{}}},
	}

	var out []*item.Item
	for _, s := range specs {
		it, err := item.NewItem(s.name, level, s.slot)
		if err != nil {
			return nil, err
		}
		for _, a := range s.affix {
			if err := it.ApplyAffix(a); err != nil {
				return nil, err
			}
		}
		if err := it.Equip(hero); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
