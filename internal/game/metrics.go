package game

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/skirmish-game/skirmish/pkg/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/skirmish-game/skirmish/internal/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	shots       metric.Int64Counter
	hits        metric.Int64Counter
	kills       metric.Int64Counter
	damage      metric.Int64Counter
	rosterGauge metric.Int64ObservableGauge

	rosterSize atomic.Int64
}

func newMetrics() (*metrics, error) {
	m := meter()
	gm := &metrics{}

	var err error
	gm.shots, err = m.Int64Counter(
		"game.shots.fired",
		metric.WithDescription("Projectiles fired by the player"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	gm.hits, err = m.Int64Counter(
		"game.projectile.hits",
		metric.WithDescription("Projectiles that struck a combatant"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	gm.kills, err = m.Int64Counter(
		"game.combatants.killed",
		metric.WithDescription("Combatants removed at zero health"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	gm.damage, err = m.Int64Counter(
		"game.player.damage",
		metric.WithDescription("Damage dealt to the player"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	gm.rosterGauge, err = m.Int64ObservableGauge(
		"game.roster.size",
		metric.WithDescription("Combatants currently alive"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating roster gauge: %w", err)
	}
	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(gm.rosterGauge, gm.rosterSize.Load())
			return nil
		},
		gm.rosterGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering roster callback: %w", err)
	}

	return gm, nil
}

func kindAttr(k core.CombatantKind) metric.AddOption {
	return metric.WithAttributes(attribute.String("kind", k.String()))
}

func (m *metrics) shotFired() {
	m.shots.Add(context.Background(), 1)
}

func (m *metrics) projectileHit(k core.CombatantKind) {
	m.hits.Add(context.Background(), 1, kindAttr(k))
}

func (m *metrics) combatantKilled(k core.CombatantKind) {
	m.kills.Add(context.Background(), 1, kindAttr(k))
}

func (m *metrics) playerDamage(amount int, k core.CombatantKind) {
	m.damage.Add(context.Background(), int64(amount), kindAttr(k))
}

func (m *metrics) setRosterSize(n int) {
	m.rosterSize.Store(int64(n))
}
