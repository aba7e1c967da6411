package upgrade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/maskborn/internal/game/skill"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/testutil"
)

func TestPicker_Empty(t *testing.T) {
	_, err := NewPicker[string](nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestPicker_Weights(t *testing.T) {
	p, err := NewPicker([]Weighted[string]{{"a", 1}, {"b", 0}, {"c", 3}})
	require.NoError(t, err)

	assert.Equal(t, "a", p.Pick(testutil.Constant(0)))
	assert.Equal(t, "a", p.Pick(testutil.Constant(0.24)))
	assert.Equal(t, "c", p.Pick(testutil.Constant(0.25)), "zero weight is never picked")
	assert.Equal(t, "c", p.Pick(testutil.Constant(0.999)))
}

func TestPicker_ZeroWeightsUniform(t *testing.T) {
	p, err := NewPicker([]Weighted[int]{{1, 0}, {2, 0}, {3, -1}})
	require.NoError(t, err)

	assert.Equal(t, 1, p.Pick(testutil.Constant(0.1)))
	assert.Equal(t, 2, p.Pick(testutil.Constant(0.5)))
	assert.Equal(t, 3, p.Pick(testutil.Constant(0.9)))
}

func TestPicker_TrailingZeroWeightAtEdge(t *testing.T) {
	p, err := NewPicker([]Weighted[string]{{"a", 1}, {"z", 0}})
	require.NoError(t, err)
	assert.Equal(t, "a", p.Pick(testutil.Constant(1)))
}

type buyer struct {
	coins int
	stats *model.StatSheet
}

func (b *buyer) Stats() *model.StatSheet { return b.stats }

func (b *buyer) SpendCoins(n int) bool {
	if n > b.coins {
		return false
	}
	b.coins -= n
	return true
}

func catalog() Catalog {
	return Catalog{
		Stats: []StatUpgrade{
			{Stat: model.StatDamage, Tiers: []Tier{{Common, 10, 2}, {Legendary, 80, 15}}},
			{Stat: model.StatCritChance, Tiers: []Tier{{Common, 15, 0.02}, {Rare, 30, 0.05}}},
			{Stat: model.StatArmor, Tiers: []Tier{{Rare, 25, 5}}},
		},
		RarityWeights: map[Rarity]float64{Common: 60, Rare: 25, Epic: 10, Legendary: 5},
	}
}

func TestShop_RollDistinctStats(t *testing.T) {
	s, err := NewShop(catalog(), testutil.Constant(0))
	require.NoError(t, err)

	offers := s.Roll(5)
	require.Len(t, offers, 3)
	seen := map[model.StatType]bool{}
	for _, o := range offers {
		assert.False(t, seen[o.Stat])
		seen[o.Stat] = true
	}
	assert.Equal(t, Offer{Stat: model.StatDamage, Rarity: Common, Cost: 10, Value: 2}, offers[0])
	assert.Equal(t, Rare, offers[2].Rarity, "armor falls back to its only tier")
}

func TestShop_Buy(t *testing.T) {
	s, err := NewShop(catalog(), testutil.Constant(0))
	require.NoError(t, err)
	b := &buyer{coins: 15, stats: model.NewStatSheet(model.DefaultCharacterStats())}
	offer := Offer{Stat: model.StatDamage, Rarity: Common, Cost: 10, Value: 2}

	require.True(t, s.Buy(b, offer))
	assert.Equal(t, 5, b.coins)
	assert.InDelta(t, 12, b.stats.Current().Damage, 1e-9)

	assert.False(t, s.Buy(b, offer), "cannot afford")
	assert.InDelta(t, 12, b.stats.Current().Damage, 1e-9)
}

func TestNewShop_Errors(t *testing.T) {
	_, err := NewShop(Catalog{}, testutil.Constant(0))
	assert.ErrorIs(t, err, ErrNoCandidates)

	c := catalog()
	c.RarityWeights = nil
	_, err = NewShop(c, testutil.Constant(0))
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestCatalog_Validate(t *testing.T) {
	require.NoError(t, func() error { c := catalog(); return c.Validate() }())

	c := catalog()
	c.Stats = append(c.Stats, StatUpgrade{Stat: model.StatDamage}, StatUpgrade{Stat: model.StatEvasion, Tiers: []Tier{{Common, -1, 0}}})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listed twice")
	assert.Contains(t, err.Error(), "negative cost")
	assert.Contains(t, err.Error(), "value must be positive")
}

func TestCatalog_YAML(t *testing.T) {
	src := `
stats:
  - stat: crit_chance
    tiers:
      - {rarity: common, cost: 15, value: 0.02}
      - {rarity: epic, cost: 50, value: 0.08}
rarity_weights:
  common: 70
  epic: 30
`
	var c Catalog
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))
	tier, ok := c.Tier(model.StatCritChance, Epic)
	require.True(t, ok)
	assert.Equal(t, 50, tier.Cost)
	assert.Equal(t, 30.0, c.RarityWeights[Epic])
}

func TestUpgradeSkill(t *testing.T) {
	sk, err := skill.New(model.SkillTemplate{
		ID: model.SkillFoxSagent, Cooldown: time.Second, EffectMultiplier: 1, UpgradeCost: 20, MaxLevel: 2,
	})
	require.NoError(t, err)
	b := &buyer{coins: 50}

	require.True(t, UpgradeSkill(b, sk))
	assert.Equal(t, 2, sk.Level())
	assert.Equal(t, 30, b.coins)

	assert.False(t, UpgradeSkill(b, sk), "level cap")
	assert.Equal(t, 30, b.coins)

	sk.SetLevel(1)
	b.coins = 5
	assert.False(t, UpgradeSkill(b, sk), "cannot afford")
	assert.Equal(t, 1, sk.Level())
}

func TestOffer_String(t *testing.T) {
	assert.Equal(t, "crit_chance +5.0% (rare, 30 coins)", Offer{Stat: model.StatCritChance, Rarity: Rare, Cost: 30, Value: 0.05}.String())
	assert.Equal(t, "damage +2 (common, 10 coins)", Offer{Stat: model.StatDamage, Rarity: Common, Cost: 10, Value: 2}.String())
}
