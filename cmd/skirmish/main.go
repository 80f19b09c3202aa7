// Package main provides the skirmish binary: it boots the combat engine from
// configuration and YAML content, loads Lua plugins, and runs one demo
// encounter to completion.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gunmetal-games/skirmish/internal/config"
	"github.com/gunmetal-games/skirmish/internal/game/arsenal"
	"github.com/gunmetal-games/skirmish/internal/game/combat"
	"github.com/gunmetal-games/skirmish/internal/game/event"
	"github.com/gunmetal-games/skirmish/internal/game/extension"
	"github.com/gunmetal-games/skirmish/internal/game/participant"
	"github.com/gunmetal-games/skirmish/internal/game/session"
	"github.com/gunmetal-games/skirmish/internal/game/status"
	"github.com/gunmetal-games/skirmish/internal/observability"
	"github.com/gunmetal-games/skirmish/internal/rng"
	"github.com/gunmetal-games/skirmish/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := rng.NewLoggedSource(rng.NewCryptoSource(), logger)

	// Load content definitions.
	contentStart := time.Now()
	gear := arsenal.NewRegistry()
	if err := gear.LoadInto(cfg.Content.WeaponsPath, cfg.Content.ItemsPath); err != nil {
		logger.Fatal("loading arsenal content", zap.Error(err))
	}
	statusRegistry := status.NewRegistry()
	if cfg.Content.StatusesPath != "" {
		if _, statErr := os.Stat(cfg.Content.StatusesPath); statErr == nil {
			statusRegistry, err = status.LoadFile(cfg.Content.StatusesPath)
			if err != nil {
				logger.Fatal("loading status content", zap.Error(err))
			}
		}
	}
	logger.Info("content loaded",
		zap.Int("weapons", len(gear.AllWeapons())),
		zap.Int("items", len(gear.AllItems())),
		zap.Int("statuses", len(statusRegistry.All())),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	// Wire the engine core.
	bus := event.NewBus(logger)
	strategies := combat.NewRegistry()
	factories := extension.NewFactoryManager()
	manager := extension.NewManager(strategies, factories, bus, logger)

	// Register the built-in strategies through the extension manager so
	// plugins and built-ins share one registration path.
	for _, s := range []combat.Strategy{
		combat.NewAttackStrategy(),
		combat.NewHealStrategy(),
		combat.NewReloadStrategy(),
		combat.NewDefendStrategy(),
	} {
		if _, err := manager.RegisterExtension(ctx, extension.Registration{
			PointID:        extension.PointCombatStrategies,
			Implementation: s,
			Config:         map[string]any{"domain": combat.DefaultDomain},
		}); err != nil {
			logger.Fatal("registering strategy", zap.Error(err))
		}
	}

	// Lua plugins.
	if cfg.Scripting.Enabled {
		pluginPointID := "scripting.plugins"
		if err := manager.RegisterExtensionPoint(&extension.Point{
			ID:          pluginPointID,
			Name:        "Lua Plugins",
			Description: "Sandboxed Lua plugin scripts",
			Type:        extension.PointPlugin,
		}); err != nil {
			logger.Fatal("registering plugin point", zap.Error(err))
		}
		scriptMgr := scripting.NewManager(cfg.Scripting.PluginDir, cfg.Scripting.InstructionLimit, bus, logger)
		if _, err := manager.RegisterExtension(ctx, extension.Registration{
			PointID:        pluginPointID,
			Implementation: scriptMgr,
		}); err != nil {
			logger.Fatal("registering plugin manager", zap.Error(err))
		}
	}

	if err := manager.Initialize(ctx); err != nil {
		logger.Fatal("initializing extension manager", zap.Error(err))
	}
	defer func() {
		if err := manager.Shutdown(ctx); err != nil {
			logger.Warn("shutting down extension manager", zap.Error(err))
		}
	}()

	logger.Info("engine initialized", zap.Duration("startup", time.Since(start)))

	// Demo encounter: a gunslinger against a raider.
	gunman := participant.New("gunman", "Vance", 40, 10)
	gunman.SetSkill("small_guns", 60)
	gunman.SetSkill(session.SkillAgility, 50)
	gunman.AddItem("stimpak", 1)
	if def, ok := gear.Weapon("10mm_pistol"); ok {
		gunman.Equipped = def.Profile()
		gunman.AddItem(def.AmmoType, def.MagazineCapacity)
	}

	raider := participant.New("raider", "Raider", 30, 8)
	raider.Defense = 20
	raider.SetSkill("melee", 40)
	raider.SetSkill(session.SkillAgility, 30)
	raider.Pos = participant.Position{X: 5, Y: 0}

	conditions := []session.VictoryCondition{
		session.NewEliminateAll("raider eliminated", []string{"raider"}),
		session.NewEliminateAll("gunman eliminated", []string{"gunman"}),
	}
	if cfg.Combat.MaxTurns > 0 {
		conditions = append(conditions, session.NewSurviveTurns("turn limit reached", cfg.Combat.MaxTurns))
	}

	sess, err := session.New(strategies, bus, statusRegistry, []*participant.Participant{gunman, raider}, conditions, src)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}
	sess.Begin(ctx)

	env := combat.Environment{
		Lighting: combat.Lighting(cfg.Combat.Lighting),
		Weather:  combat.Weather(cfg.Combat.Weather),
	}

	for sess.IsActive() {
		actor, ok := sess.Current()
		if !ok {
			break
		}

		action := chooseAction(actor, sess)
		cctx := &combat.Context{Turn: sess.Turn, Env: env, Rand: src}

		result, err := sess.ResolveAction(ctx, action, cctx)
		switch {
		case err != nil:
			logger.Warn("action failed", zap.String("actor", actor.ID), zap.Error(err))
		case result.Message != "":
			logger.Info(result.Message,
				zap.Int("turn", sess.Turn),
				zap.Bool("success", result.Success),
				zap.Int("damage", result.Damage),
			)
		}

		if !sess.IsActive() {
			break
		}
		if _, ok := sess.AdvanceTurn(ctx); !ok {
			break
		}
	}

	logger.Info("encounter finished",
		zap.Int("turns", sess.Turn),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// chooseAction picks a simple action for the demo loop: heal when badly
// hurt and holding a healing item, otherwise attack the first living enemy.
func chooseAction(actor *participant.Participant, sess *session.Session) combat.Action {
	if actor.HP*4 <= actor.MaxHP && actor.ItemCount("stimpak") > 0 {
		return combat.Action{
			Type:     combat.ActionUseItem,
			ItemID:   "stimpak",
			ItemKind: combat.ItemKindHealing,
		}
	}
	for _, id := range sess.Roster() {
		if id == actor.ID {
			continue
		}
		if target, ok := sess.Participant(id); ok && target.IsAlive() {
			return combat.Action{Type: combat.ActionAttack, TargetID: id}
		}
	}
	return combat.Action{Type: combat.ActionDefend}
}
