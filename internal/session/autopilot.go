package session

import (
	"log/slog"
	"slices"

	"github.com/udisondev/maskborn/internal/game/upgrade"
	"github.com/udisondev/maskborn/internal/model"
)

// DefaultOffers is how many shop offers the autopilot rolls between waves.
const DefaultOffers = 3

// healBelow is the health ratio under which the autopilot drops a totem.
const healBelow = 0.7

// Autopilot plays the session headlessly: it swings whenever a swing is
// free, fires skills while enemies are alive, and shops between waves.
type Autopilot struct {
	// Offers rolled per shop visit; DefaultOffers if zero.
	Offers int
	// AdvanceWaves starts the next wave after shopping. Leave false when
	// the spawner auto-advances.
	AdvanceWaves bool

	shopped int
}

// NewAutopilot creates an autopilot.
func NewAutopilot(advanceWaves bool) *Autopilot {
	return &Autopilot{Offers: DefaultOffers, AdvanceWaves: advanceWaves, shopped: -1}
}

// Step issues this tick's actions. Call it on the tick goroutine, before Tick.
func (a *Autopilot) Step(s *Session) {
	if s.Over() {
		return
	}

	if s.Spawner().AliveEnemies().Get() > 0 {
		s.Attack()
		a.useSkills(s)
		return
	}

	if s.Spawner().IsSpawning() || s.Spawner().Finished() {
		return
	}
	wave := s.Spawner().CurrentWave()
	if wave > 0 && wave != a.shopped {
		a.shopped = wave
		a.shop(s)
		if a.AdvanceWaves {
			s.StartNextWave()
		}
	}
}

func (a *Autopilot) useSkills(s *Session) {
	book := s.Skills()
	stats := s.Player().Stats()
	for i := range book.Len() {
		sk := book.Slot(i)
		if !sk.CanUse() {
			continue
		}
		if sk.ID() == model.SkillHealingTotem && stats.CurrentHealth() >= stats.MaxHealth()*healBelow {
			continue
		}
		s.UseSkill(i)
	}
}

// shop buys the affordable offers cheapest first, then spends what is
// left on skill levels.
func (a *Autopilot) shop(s *Session) {
	n := a.Offers
	if n <= 0 {
		n = DefaultOffers
	}
	offers := s.Offers(n)
	slices.SortFunc(offers, func(x, y upgrade.Offer) int { return x.Cost - y.Cost })

	bought := 0
	for _, o := range offers {
		if s.Buy(o) {
			bought++
		}
	}
	for _, sk := range s.Skills().Skills() {
		if s.UpgradeSkill(sk.ID()) {
			bought++
		}
	}
	slog.Info("autopilot shopped",
		"wave", s.Spawner().CurrentWave(),
		"offers", len(offers),
		"bought", bought,
		"coins", s.Player().Coins().Get())
}
