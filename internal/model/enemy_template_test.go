package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() EnemyTemplate {
	return EnemyTemplate{
		ID:          "grunt",
		MaxHealth:   30,
		MoveSpeed:   2,
		MeleeDamage: 5,
		AttackRange: 1.5,
		AttackSpeed: time.Second,
	}
}

func TestEnemyTemplate_ApplyDefaults(t *testing.T) {
	tpl := validTemplate()
	tpl.ApplyDefaults()

	assert.Equal(t, "grunt", tpl.Name)
	assert.Equal(t, AttackModeTimer, tpl.AttackMode)
	assert.Equal(t, 1.0, tpl.CritMultiplier)
	assert.Equal(t, DefaultAttackTimeout, tpl.AttackTimeout)
	assert.Equal(t, DefaultHitDelay, tpl.HitDelay)
	require.NoError(t, tpl.Validate())
}

func TestEnemyTemplate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EnemyTemplate)
	}{
		{"empty id", func(t *EnemyTemplate) { t.ID = "" }},
		{"zero health", func(t *EnemyTemplate) { t.MaxHealth = 0 }},
		{"zero attack speed", func(t *EnemyTemplate) { t.AttackSpeed = 0 }},
		{"evasion above one", func(t *EnemyTemplate) { t.Evasion = 1.5 }},
		{"unknown mode", func(t *EnemyTemplate) { t.AttackMode = "ranged" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tpl.ApplyDefaults()
			tt.mutate(&tpl)
			assert.Error(t, tpl.Validate())
		})
	}
}

func TestWave_Validate(t *testing.T) {
	known := func(id string) bool { return id == "grunt" }

	w := Wave{Name: "first", Entries: []WaveEntry{{EnemyID: "grunt", Count: 3, SpawnRate: time.Second}}}
	require.NoError(t, w.Validate(known))
	assert.Equal(t, 3, w.TotalEnemies())

	w.Entries = append(w.Entries, WaveEntry{EnemyID: "dragon", Count: 1})
	assert.Error(t, w.Validate(known))
}
