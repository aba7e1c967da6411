package upgrade

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/maskborn/internal/game/skill"
	"github.com/udisondev/maskborn/internal/model"
)

// Buyer pays for upgrades and owns the stat sheet they modify.
type Buyer interface {
	SpendCoins(n int) bool
	Stats() *model.StatSheet
}

// Offer is one stat upgrade on display.
type Offer struct {
	Stat   model.StatType
	Rarity Rarity
	Cost   int
	Value  float64
}

func (o Offer) String() string {
	if o.Stat.IsPercentage() {
		return fmt.Sprintf("%s +%.1f%% (%s, %d coins)", o.Stat, o.Value*100, o.Rarity, o.Cost)
	}
	return fmt.Sprintf("%s +%g (%s, %d coins)", o.Stat, o.Value, o.Rarity, o.Cost)
}

// Shop rolls offers from a catalog and applies purchases.
type Shop struct {
	catalog  Catalog
	rarities *Picker[Rarity]
	rng      model.Random
}

// NewShop creates a shop. The catalog must list at least one stat and one
// rarity weight.
func NewShop(catalog Catalog, rng model.Random) (*Shop, error) {
	if len(catalog.Stats) == 0 {
		return nil, fmt.Errorf("creating shop: %w", ErrNoCandidates)
	}
	picker, err := NewPicker(catalog.rarityCandidates())
	if err != nil {
		return nil, fmt.Errorf("creating rarity picker: %w", err)
	}
	return &Shop{catalog: catalog, rarities: picker, rng: rng}, nil
}

// Roll returns up to n offers for distinct stats. Each offer's rarity is
// drawn from the rarity weights; a stat without that tier falls back to its
// first tier.
func (s *Shop) Roll(n int) []Offer {
	pool := make([]int, len(s.catalog.Stats))
	for i := range pool {
		pool[i] = i
	}
	offers := make([]Offer, 0, min(n, len(pool)))
	for len(offers) < n && len(pool) > 0 {
		k := model.RandIndex(s.rng, len(pool))
		stat := s.catalog.Stats[pool[k]]
		pool = append(pool[:k], pool[k+1:]...)

		if len(stat.Tiers) == 0 {
			continue
		}
		rarity := s.rarities.Pick(s.rng)
		tier, ok := s.catalog.Tier(stat.Stat, rarity)
		if !ok {
			tier = stat.Tiers[0]
		}
		offers = append(offers, Offer{Stat: stat.Stat, Rarity: tier.Rarity, Cost: tier.Cost, Value: tier.Value})
	}
	return offers
}

// Buy charges the offer and adds its value as a stat modifier.
// Returns false when the buyer cannot afford it.
func (s *Shop) Buy(buyer Buyer, offer Offer) bool {
	if !buyer.SpendCoins(offer.Cost) {
		return false
	}
	buyer.Stats().AddModifier(offer.Stat, offer.Value)
	slog.Info("stat upgraded", "stat", offer.Stat, "rarity", offer.Rarity, "value", offer.Value, "cost", offer.Cost)
	return true
}

// CanUpgradeSkill reports whether sk is below its level cap.
func CanUpgradeSkill(sk *skill.Skill) bool {
	return sk.Level() < sk.Template().MaxLevel
}

// UpgradeSkill charges the skill's upgrade cost and raises its level.
// Returns false at the level cap or when the buyer cannot afford it.
func UpgradeSkill(buyer Buyer, sk *skill.Skill) bool {
	if !CanUpgradeSkill(sk) {
		return false
	}
	if !buyer.SpendCoins(sk.Template().UpgradeCost) {
		return false
	}
	sk.Upgrade()
	slog.Info("skill upgraded", "skill", sk.ID(), "level", sk.Level())
	return true
}
