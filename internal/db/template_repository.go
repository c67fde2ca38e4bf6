package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/arpg/internal/model"
)

// ErrTemplateNotFound is returned by LoadTemplate for an unknown title.
var ErrTemplateNotFound = errors.New("monster template not found")

// TemplateRepository handles monster template CRUD operations
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new monster template repository
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

const templateColumns = `title, base_attack, base_defense, base_hp,
	attack_per_level, defense_per_level, hp_per_level, speed, weapon`

func scanTemplate(row pgx.Row) (*model.MonsterTemplate, error) {
	var t model.MonsterTemplate
	err := row.Scan(
		&t.Title, &t.BaseAttack, &t.BaseDefense, &t.BaseHP,
		&t.AttackPerLevel, &t.DefensePerLevel, &t.HPPerLevel, &t.Speed, &t.WeaponClass,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplate loads monster template by title
func (r *TemplateRepository) LoadTemplate(ctx context.Context, title string) (*model.MonsterTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM monster_templates WHERE title = $1`

	t, err := scanTemplate(r.pool.QueryRow(ctx, query, title))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("loading monster template %q: %w", title, err)
	}
	return t, nil
}

// LoadAll loads all monster templates ordered by title.
// Invalid rows fail the whole load.
func (r *TemplateRepository) LoadAll(ctx context.Context) ([]*model.MonsterTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM monster_templates ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all monster templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.MonsterTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning monster template: %w", err)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monster templates: %w", err)
	}
	return templates, nil
}

// Save inserts or updates a monster template.
func (r *TemplateRepository) Save(ctx context.Context, t *model.MonsterTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO monster_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (title) DO UPDATE SET
			base_attack = EXCLUDED.base_attack,
			base_defense = EXCLUDED.base_defense,
			base_hp = EXCLUDED.base_hp,
			attack_per_level = EXCLUDED.attack_per_level,
			defense_per_level = EXCLUDED.defense_per_level,
			hp_per_level = EXCLUDED.hp_per_level,
			speed = EXCLUDED.speed,
			weapon = EXCLUDED.weapon
	`

	_, err := r.pool.Exec(ctx, query,
		t.Title, t.BaseAttack, t.BaseDefense, t.BaseHP,
		t.AttackPerLevel, t.DefensePerLevel, t.HPPerLevel, t.Speed, t.WeaponClass,
	)
	if err != nil {
		return fmt.Errorf("saving monster template %q: %w", t.Title, err)
	}
	return nil
}

// Delete removes a monster template. Unknown titles are ignored.
func (r *TemplateRepository) Delete(ctx context.Context, title string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM monster_templates WHERE title = $1`, title); err != nil {
		return fmt.Errorf("deleting monster template %q: %w", title, err)
	}
	return nil
}
