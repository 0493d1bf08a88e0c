package repository

import (
	"context"
	"testing"

	"github.com/arnold/compass/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesCRUD(t *testing.T) {
	repos, clock := setupRepos(t)
	ctx := context.Background()

	family, err := repos.Values.Add(ctx, models.Value{Name: " Family ", Statement: "Be present.", Category: models.CategoryRelationships})
	require.NoError(t, err)
	assert.Equal(t, "Family", family.Name)
	assert.Equal(t, clock.Now(), family.CreatedAt)
	assert.NotEmpty(t, family.ID)

	name := "Kin"
	updated, err := repos.Values.Update(ctx, family.ID, models.UpdateValueRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Kin", updated.Name)
	assert.Equal(t, "Be present.", updated.Statement)

	empty := ""
	_, err = repos.Values.Update(ctx, family.ID, models.UpdateValueRequest{Name: &empty})
	assert.True(t, IsValidation(err))

	got, err := repos.Values.Get(ctx, family.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kin", got.Name)

	require.NoError(t, repos.Values.Delete(ctx, family.ID))
	assert.Empty(t, repos.Values.Load(ctx))
	assert.ErrorIs(t, repos.Values.Delete(ctx, family.ID), ErrNotFound)
}

func TestAddPredefinedValue(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	v, err := repos.Values.AddPredefined(ctx, "integrity")
	require.NoError(t, err)
	assert.Equal(t, "Integrity", v.Name)
	assert.True(t, v.Predefined)
	assert.Equal(t, models.CategoryPersonal, v.Category)

	_, err = repos.Values.AddPredefined(ctx, "Punctuality")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoleLimit(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Parent", "Partner", "Friend", "Engineer", "Mentor", "Neighbour", "Athlete"} {
		_, err := repos.Roles.Add(ctx, models.Role{Name: name})
		require.NoError(t, err)
	}

	_, err := repos.Roles.Add(ctx, models.Role{Name: "Volunteer"})
	assert.ErrorIs(t, err, ErrRoleLimit)
	assert.Len(t, repos.Roles.Load(ctx), models.MaxRoles)

	roles := repos.Roles.Load(ctx)
	require.NoError(t, repos.Roles.Delete(ctx, roles[0].ID))
	_, err = repos.Roles.Add(ctx, models.Role{Name: "Volunteer"})
	assert.NoError(t, err)
}

func TestRoleUpdate(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	role, err := repos.Roles.Add(ctx, models.Role{Name: "Coach"})
	require.NoError(t, err)

	statement := "Help the team grow."
	updated, err := repos.Roles.Update(ctx, role.ID, models.UpdateRoleRequest{Statement: &statement})
	require.NoError(t, err)
	assert.Equal(t, "Coach", updated.Name)
	assert.Equal(t, statement, updated.Statement)

	_, err = repos.Roles.Update(ctx, "missing", models.UpdateRoleRequest{Statement: &statement})
	assert.ErrorIs(t, err, ErrNotFound)
}
