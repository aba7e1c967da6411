package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/save"
)

// ProgressRepository stores save snapshots in PostgreSQL.
// It implements save.Store.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

var _ save.Store = (*ProgressRepository)(nil)

// NewProgressRepository создаёт новый ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Save перезаписывает прогресс профиля (статы + уровни скиллов) в одной транзакции.
func (r *ProgressRepository) Save(ctx context.Context, profile string, snap save.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for profile %s: %w", profile, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "profile", profile, "error", err)
		}
	}()

	mods := snap.Modifiers
	if mods == nil {
		mods = map[model.StatType]float64{}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO player_progress (profile, base_stats, modifiers, current_health, coins, experience, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile) DO UPDATE SET
			base_stats = EXCLUDED.base_stats,
			modifiers = EXCLUDED.modifiers,
			current_health = EXCLUDED.current_health,
			coins = EXCLUDED.coins,
			experience = EXCLUDED.experience,
			saved_at = EXCLUDED.saved_at`,
		profile, snap.Base, mods, snap.CurrentHealth, snap.Coins, snap.Experience, snap.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting progress of %s: %w", profile, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM player_skills WHERE profile = $1`, profile); err != nil {
		return fmt.Errorf("deleting skills of %s: %w", profile, err)
	}
	for id, lvl := range snap.SkillLevels {
		if _, err := tx.Exec(ctx,
			`INSERT INTO player_skills (profile, skill_id, skill_level) VALUES ($1, $2, $3)`,
			profile, int16(id), lvl,
		); err != nil {
			return fmt.Errorf("inserting skill %s of %s: %w", id, profile, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing progress of %s: %w", profile, err)
	}
	slog.Debug("progress saved", "store", "postgres", "profile", profile, "skills", len(snap.SkillLevels))
	return nil
}

// Load загружает прогресс профиля. Возвращает save.ErrNotFound если сохранения нет.
func (r *ProgressRepository) Load(ctx context.Context, profile string) (save.Snapshot, error) {
	var snap save.Snapshot
	err := r.pool.QueryRow(ctx, `
		SELECT base_stats, modifiers, current_health, coins, experience, saved_at
		FROM player_progress WHERE profile = $1`, profile,
	).Scan(&snap.Base, &snap.Modifiers, &snap.CurrentHealth, &snap.Coins, &snap.Experience, &snap.SavedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return save.Snapshot{}, save.ErrNotFound
		}
		return save.Snapshot{}, fmt.Errorf("querying progress of %s: %w", profile, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT skill_id, skill_level FROM player_skills WHERE profile = $1 ORDER BY skill_id`, profile)
	if err != nil {
		return save.Snapshot{}, fmt.Errorf("querying skills of %s: %w", profile, err)
	}
	defer rows.Close()

	snap.SkillLevels = make(map[model.SkillID]int)
	for rows.Next() {
		var id int16
		var lvl int
		if err := rows.Scan(&id, &lvl); err != nil {
			return save.Snapshot{}, fmt.Errorf("scanning skill row: %w", err)
		}
		snap.SkillLevels[model.SkillID(id)] = lvl
	}
	if err := rows.Err(); err != nil {
		return save.Snapshot{}, fmt.Errorf("iterating skill rows: %w", err)
	}
	return snap, nil
}
