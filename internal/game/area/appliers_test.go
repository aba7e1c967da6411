package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/testutil"
)

func TestDamageApplier_BypassesResolver(t *testing.T) {
	near := testutil.NewDummy(1, model.NewVec3(1, 0, 0), 100)
	far := testutil.NewDummy(2, model.NewVec3(9, 0, 0), 100)
	ally := testutil.NewDummy(3, model.NewVec3(0, 0, 1), 100)
	ally.Mask = model.LayerPlayer

	a := &DamageApplier{
		Query:  testutil.Query{near, far, ally},
		Rng:    testutil.Constant(0.5),
		Radius: 3,
		Mask:   model.LayerEnemy,
	}
	a.Apply(20)

	require.Len(t, near.Hits, 1)
	assert.InDelta(t, 18, near.Hits[0].FinalDamage, 1e-9, "20 * 0.9")
	assert.False(t, near.Hits[0].IsCrit)
	assert.Empty(t, far.Hits)
	assert.Empty(t, ally.Hits)
}

func TestDamageApplier_RollRange(t *testing.T) {
	d := testutil.NewDummy(1, model.Vec3{}, 1000)
	a := &DamageApplier{Query: testutil.Query{d}, Radius: 1, Mask: model.LayerEnemy}

	a.Rng = testutil.Constant(0)
	a.Apply(10)
	a.Rng = testutil.Constant(0.999999)
	a.Apply(10)

	assert.InDelta(t, 8, d.Hits[0].FinalDamage, 1e-9)
	assert.InDelta(t, 10, d.Hits[1].FinalDamage, 1e-4)
}

func TestDamageApplier_MissingCollaboratorsSkip(t *testing.T) {
	d := testutil.NewDummy(1, model.Vec3{}, 100)

	noRng := &DamageApplier{Query: testutil.Query{d}, Radius: 1, Mask: model.LayerEnemy}
	assert.NotPanics(t, func() { noRng.Apply(10) })

	noQuery := &DamageApplier{Rng: testutil.Constant(0.5), Radius: 1, Mask: model.LayerEnemy}
	assert.NotPanics(t, func() { noQuery.Apply(10) })

	assert.Empty(t, d.Hits)
	assert.InDelta(t, 100, d.Health.Current(), 1e-9)
}

type healTarget struct {
	pos    model.Vec3
	healed float64
}

func (h *healTarget) Position() model.Vec3 { return h.pos }

func (h *healTarget) Heal(amount float64) float64 {
	h.healed += amount
	return amount
}

// The heal applier checks distance itself while the damage applier trusts the
// query radius. Both behaviors are kept as they are.
func TestHealApplier_DistanceCheck(t *testing.T) {
	target := &healTarget{pos: model.NewVec3(2, 0, 0)}
	a := &HealApplier{Target: target, Center: model.Vec3{}, Radius: 3}

	a.Apply(5)
	assert.Equal(t, 5.0, target.healed)

	target.pos = model.NewVec3(4, 0, 0)
	a.Apply(5)
	assert.Equal(t, 5.0, target.healed, "outside the healing radius")

	a.Target = nil
	assert.NotPanics(t, func() { a.Apply(5) })
}
