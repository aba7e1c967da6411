package skill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/effect"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
	"github.com/udisondev/maskborn/internal/testutil"
)

const tick = 100 * time.Millisecond

type caster struct {
	pos    model.Vec3
	stats  model.CharacterStats
	healed []float64
}

func (c *caster) Position() model.Vec3          { return c.pos }
func (c *caster) Facing() model.Vec3            { return model.Vec3{Z: 1} }
func (c *caster) Current() model.CharacterStats { return c.stats }

func (c *caster) Heal(amount float64) float64 {
	c.healed = append(c.healed, amount)
	return amount
}

func template(id model.SkillID) model.SkillTemplate {
	return model.SkillTemplate{
		ID:               id,
		Name:             id.String(),
		Cooldown:         5 * time.Second,
		EffectMultiplier: 1,
		MaxLevel:         5,
		Radius:           3,
	}
}

func newEnv(t *testing.T, enemies ...model.Damageable) (Env, *caster, *present.Recorder) {
	t.Helper()
	rec := present.NewRecorder()
	c := &caster{stats: model.DefaultCharacterStats()}
	return Env{
		Caster:   c,
		Query:    testutil.Query(enemies),
		Rng:      testutil.Constant(0.5),
		Carriers: effect.NewManager(rec, 0),
	}, c, rec
}

func advance(s *Skill, env Env, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		s.UpdateCooldown(tick)
		env.Carriers.Tick(tick)
	}
}

func TestScalingFactor(t *testing.T) {
	assert.InDelta(t, 1.0, ScalingFactor(1), 1e-9)
	assert.InDelta(t, 2.2, ScalingFactor(2), 1e-9)
	assert.InDelta(t, 3.6, ScalingFactor(3), 1e-9)
	assert.InDelta(t, 19.0, ScalingFactor(10), 1e-9)
}

func TestNew_UnknownID(t *testing.T) {
	_, err := New(model.SkillTemplate{ID: 42})
	require.Error(t, err)
	for _, id := range []model.SkillID{model.SkillHealingTotem, model.SkillFoxSagent, model.SkillShurikenFan} {
		assert.True(t, Registered(id), id.String())
	}
}

func TestTryUse_OnCooldownHasNoSideEffect(t *testing.T) {
	env, _, rec := newEnv(t)
	s, err := New(template(model.SkillShurikenFan))
	require.NoError(t, err)

	require.True(t, s.TryUse(env))
	assert.Equal(t, 5*time.Second, s.Remaining())
	require.Len(t, rec.Effects, 1)

	s.UpdateCooldown(time.Second)
	assert.False(t, s.TryUse(env))
	assert.Equal(t, 4*time.Second, s.Remaining(), "cooldown untouched")
	assert.Len(t, rec.Effects, 1, "no second carrier")
	assert.Equal(t, 1, env.Carriers.ActiveCount())
}

func TestUpdateCooldown_FloorsAtZero(t *testing.T) {
	env, _, _ := newEnv(t)
	s, _ := New(template(model.SkillShurikenFan))
	s.TryUse(env)

	var seen []time.Duration
	s.Cooldown().Subscribe(func(c event.Change[time.Duration]) { seen = append(seen, c.New) }, false)

	s.UpdateCooldown(3 * time.Second)
	s.UpdateCooldown(3 * time.Second)
	s.UpdateCooldown(3 * time.Second)

	assert.Zero(t, s.Remaining())
	assert.True(t, s.CanUse())
	assert.Equal(t, []time.Duration{2 * time.Second, 0}, seen)
}

func TestUpgrade_DoesNotShortenCooldown(t *testing.T) {
	env, _, _ := newEnv(t)
	s, _ := New(template(model.SkillShurikenFan))
	for range 9 {
		s.Upgrade()
	}
	assert.Equal(t, 10, s.Level(), "no cap at this layer")

	s.TryUse(env)
	assert.Equal(t, 5*time.Second, s.Remaining())

	s.SetLevel(0)
	assert.Equal(t, 1, s.Level())
}

func TestShurikenFan_DamagesAroundCaster(t *testing.T) {
	near := testutil.NewDummy(10, model.NewVec3(1, 0, 0), 1000)
	far := testutil.NewDummy(11, model.NewVec3(8, 0, 0), 1000)
	env, c, rec := newEnv(t, near, far)
	c.stats.Damage = 20

	s, _ := New(template(model.SkillShurikenFan))
	s.Upgrade()
	require.True(t, s.TryUse(env))

	assert.Equal(t, model.NewVec3(0, 0.5, 0), rec.Effects[0].Pos)
	advance(s, env, 2*time.Second)

	// delay 80ms, then every 300ms for 1.5s
	require.Len(t, near.Hits, 5)
	assert.InDelta(t, 20*2.2*0.9, near.Hits[0].FinalDamage, 1e-9)
	assert.Empty(t, far.Hits)
	assert.Zero(t, env.Carriers.ActiveCount())
}

func TestFoxSagent_TargetsClosestEnemy(t *testing.T) {
	closest := testutil.NewDummy(10, model.NewVec3(2, 0, 0), 1000)
	other := testutil.NewDummy(11, model.NewVec3(6, 0, 0), 1000)
	env, c, rec := newEnv(t, closest, other)
	c.stats.Damage = 10

	s, _ := New(template(model.SkillFoxSagent))
	require.True(t, s.TryUse(env))
	assert.Equal(t, model.NewVec3(2, 0.5, 0), rec.Effects[0].Pos)
	assert.Equal(t, FoxSagentLifetime, rec.Effects[0].Duration)

	advance(s, env, 4*time.Second)

	// 7 ticks of 10/2 then one strike of 10, each rolled at 0.9
	require.Len(t, closest.Hits, 8)
	assert.InDelta(t, 4.5, closest.Hits[0].FinalDamage, 1e-9)
	assert.InDelta(t, 9, closest.Hits[7].FinalDamage, 1e-9)
	assert.Empty(t, other.Hits)

	advance(s, env, 2900*time.Millisecond)
	assert.Equal(t, 1, env.Carriers.ActiveCount(), "carrier lives for its full lifetime")
	advance(s, env, tick)
	assert.Zero(t, env.Carriers.ActiveCount())
}

func TestFoxSagent_FallsBackToCaster(t *testing.T) {
	env, c, rec := newEnv(t)
	c.pos = model.NewVec3(3, 0, 3)
	s, _ := New(template(model.SkillFoxSagent))

	require.True(t, s.TryUse(env))
	assert.Equal(t, c.pos, rec.Effects[0].Pos)
}

func TestHealingTotem_HealsWhileInRange(t *testing.T) {
	env, c, _ := newEnv(t)
	c.stats.HpRegen = 2
	s, _ := New(template(model.SkillHealingTotem))

	require.True(t, s.TryUse(env))
	advance(s, env, 2*time.Second)
	require.Len(t, c.healed, 1, "first heal at 1.5s")
	assert.InDelta(t, 2.0, c.healed[0], 1e-9)

	c.pos = model.NewVec3(10, 0, 0)
	advance(s, env, 7*time.Second)
	assert.Len(t, c.healed, 1, "caster walked away")
}

func TestSkill_MissingCollaborators(t *testing.T) {
	s, _ := New(template(model.SkillHealingTotem))
	assert.NotPanics(t, func() {
		assert.False(t, s.TryUse(Env{}))
	})
	assert.True(t, s.CanUse(), "failed cast keeps the skill ready")
	assert.Zero(t, s.Remaining())

	enemy := testutil.NewDummy(10, model.NewVec3(1, 0, 0), 1000)
	for _, id := range []model.SkillID{model.SkillShurikenFan, model.SkillFoxSagent} {
		env, _, rec := newEnv(t, enemy)
		env.Rng = nil

		s, err := New(template(id))
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			assert.False(t, s.TryUse(env), id)
			advance(s, env, 5*time.Second)
		})
		assert.True(t, s.CanUse(), id)
		assert.Empty(t, rec.Effects, id)
		assert.Zero(t, env.Carriers.ActiveCount(), id)
	}
	assert.Empty(t, enemy.Hits)

	env, _, _ := newEnv(t)
	env.Rng = nil
	totem, _ := New(template(model.SkillHealingTotem))
	assert.True(t, totem.TryUse(env), "healing needs no random source")
}

func TestBook(t *testing.T) {
	env, _, _ := newEnv(t)
	b, err := NewBook([]model.SkillTemplate{
		template(model.SkillHealingTotem),
		template(model.SkillFoxSagent),
		template(model.SkillShurikenFan),
	})
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	assert.True(t, b.Use(2, env))
	assert.False(t, b.Use(2, env))
	assert.False(t, b.Use(7, env))

	b.Tick(5 * time.Second)
	assert.True(t, b.Slot(2).CanUse())

	b.SetLevels(map[model.SkillID]int{model.SkillFoxSagent: 3, 42: 9})
	assert.Equal(t, map[model.SkillID]int{
		model.SkillHealingTotem: 1,
		model.SkillFoxSagent:    3,
		model.SkillShurikenFan:  1,
	}, b.Levels())
}

func TestNewBook_Errors(t *testing.T) {
	_, err := NewBook([]model.SkillTemplate{template(model.SkillFoxSagent), template(model.SkillFoxSagent)})
	assert.Error(t, err)

	_, err = NewBook([]model.SkillTemplate{{ID: 42}})
	assert.Error(t, err)
}
