package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/maskborn/internal/testutil"
)

func TestComputeDamage_ArmorOver100IsZero(t *testing.T) {
	for _, armor := range []float64{100, 150, 1e6} {
		for _, roll := range []float64{0, 0.3, 0.99} {
			rng := testutil.NewSequence(0.5, roll, roll, roll)
			got := ComputeDamage(rng, 50, 0.5, 3, armor, 0, 0.5)
			assert.Zero(t, got.FinalDamage, "armor=%v roll=%v", armor, roll)
			assert.False(t, got.IsMiss)
		}
	}
}

func TestComputeDamage_FullEvasionAlwaysMisses(t *testing.T) {
	for _, roll := range []float64{0, 0.5, 0.999999} {
		rng := testutil.NewSequence(roll, 0, 0, 0)
		got := ComputeDamage(rng, 1000, 1, 10, 0, 1, 1)

		assert.True(t, got.IsMiss)
		assert.Zero(t, got.FinalDamage)
		assert.False(t, got.IsCrit)
		assert.False(t, got.IsLifeSteal, "miss short-circuits the life steal roll")
		assert.Equal(t, 1, rng.Calls(), "nothing is rolled after a miss")
	}
}

func TestComputeDamage_Rolls(t *testing.T) {
	tests := []struct {
		name          string
		rolls         []float64
		base          float64
		critChance    float64
		critMul       float64
		armor         float64
		lifeStealRate float64
		want          float64
		wantCrit      bool
		wantSteal     bool
	}{
		{
			name:  "low roll, no crit",
			rolls: []float64{0.5, 0, 0.9, 0.9},
			base:  100, critChance: 0.5, critMul: 2,
			want: 70,
		},
		{
			name:  "mid roll, crit, half armor",
			rolls: []float64{0.5, 0.5, 0.1, 0.9},
			base:  100, critChance: 0.2, critMul: 2, armor: 50,
			want: 90, wantCrit: true,
		},
		{
			name:  "life steal on zero damage",
			rolls: []float64{0.5, 0.5, 0.9, 0.1},
			base:  100, critChance: 0, critMul: 2, armor: 100, lifeStealRate: 0.5,
			want: 0, wantSteal: true,
		},
		{
			name:  "negative armor ignored",
			rolls: []float64{0.5, 0.5, 0.9, 0.9},
			base:  10, critMul: 1, armor: -50,
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := testutil.NewSequence(tt.rolls...)
			got := ComputeDamage(rng, tt.base, tt.critChance, tt.critMul, tt.armor, 0, tt.lifeStealRate)

			assert.InDelta(t, tt.want, got.FinalDamage, 1e-9)
			assert.Equal(t, tt.wantCrit, got.IsCrit)
			assert.Equal(t, tt.wantSteal, got.IsLifeSteal)
			assert.False(t, got.IsMiss)
		})
	}
}

func TestComputeDamage_RawRange(t *testing.T) {
	lo := ComputeDamage(testutil.NewSequence(0.9, 0, 0.9, 0.9), 20, 0, 1, 0, 0, 0)
	hi := ComputeDamage(testutil.NewSequence(0.9, 0.999999, 0.9, 0.9), 20, 0, 1, 0, 0, 0)

	assert.InDelta(t, 14, lo.FinalDamage, 1e-9)
	assert.InDelta(t, 22, hi.FinalDamage, 1e-4)
}

func TestResolver_UsesDefense(t *testing.T) {
	r := NewResolver(testutil.Constant(0.5))

	missed := r.Resolve(Attack{Damage: 10, CritMultiplier: 1}, Defense{Evasion: 0.6})
	assert.True(t, missed.IsMiss)

	hit := r.Resolve(Attack{Damage: 10, CritMultiplier: 1}, Defense{Armor: 50})
	assert.InDelta(t, 4.5, hit.FinalDamage, 1e-9)
}

func TestArmorFactor(t *testing.T) {
	assert.Equal(t, 1.0, ArmorFactor(0))
	assert.Equal(t, 0.75, ArmorFactor(25))
	assert.Equal(t, 0.0, ArmorFactor(100))
	assert.Equal(t, 0.0, ArmorFactor(250))
}
