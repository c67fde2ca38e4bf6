package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arpg/internal/model"
)

func TestTemplateRepository_SaveAndLoad(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTemplateRepository(pool)
	ctx := context.Background()

	tiger := &model.MonsterTemplate{
		Title: "Tiger", BaseAttack: 6, BaseDefense: 2, BaseHP: 60,
		AttackPerLevel: 2, DefensePerLevel: 1, HPPerLevel: 10, Speed: 120,
	}
	skeleton := &model.MonsterTemplate{
		Title: "Skeleton", BaseAttack: 3, BaseDefense: 1, BaseHP: 30, Speed: 80.5,
		WeaponClass: model.WeaponClassBite,
	}
	require.NoError(t, repo.Save(ctx, tiger))
	require.NoError(t, repo.Save(ctx, skeleton))

	got, err := repo.LoadTemplate(ctx, "Tiger")
	require.NoError(t, err)
	assert.Equal(t, tiger, got)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Skeleton", all[0].Title)
	assert.Equal(t, model.WeaponClassBite, all[0].WeaponClass)
	assert.Equal(t, "Tiger", all[1].Title)
}

func TestTemplateRepository_SaveUpdates(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTemplateRepository(pool)
	ctx := context.Background()

	tmpl := &model.MonsterTemplate{Title: "Goblin", BaseAttack: 4, BaseDefense: 1, BaseHP: 40, Speed: 90}
	require.NoError(t, repo.Save(ctx, tmpl))

	tmpl.BaseHP = 55
	require.NoError(t, repo.Save(ctx, tmpl))

	got, err := repo.LoadTemplate(ctx, "Goblin")
	require.NoError(t, err)
	assert.Equal(t, 55, got.BaseHP)
}

func TestTemplateRepository_Errors(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTemplateRepository(pool)
	ctx := context.Background()

	_, err := repo.LoadTemplate(ctx, "Dragon")
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	err = repo.Save(ctx, &model.MonsterTemplate{Title: "Ghost"})
	assert.True(t, errors.Is(err, model.ErrInvalidTemplate))

	require.NoError(t, repo.Delete(ctx, "Dragon"))
}

func TestTemplateRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewTemplateRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &model.MonsterTemplate{Title: "Goblin", BaseHP: 40, Speed: 90}))
	require.NoError(t, repo.Delete(ctx, "Goblin"))

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, RunMigrations(context.Background(), testDSN))
}
