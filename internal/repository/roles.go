package repository

import (
	"context"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

type RoleRepository struct {
	base
}

func (r *RoleRepository) items() collection[models.Role] {
	return collection[models.Role]{store: r.store, key: storage.KeyRoles, id: func(v *models.Role) string { return v.ID }}
}

func (r *RoleRepository) Load(ctx context.Context) []models.Role {
	return r.items().load(ctx)
}

func (r *RoleRepository) Get(ctx context.Context, id string) (models.Role, error) {
	return r.items().find(ctx, id)
}

// Add appends a role unless MaxRoles already exist.
func (r *RoleRepository) Add(ctx context.Context, role models.Role) (models.Role, error) {
	trimmed(&role.Name)
	trimmed(&role.Statement)
	if err := validateStruct(role); err != nil {
		return models.Role{}, err
	}
	now := r.now()
	role.ID = newID(now)
	role.CreatedAt = now

	_, err := r.items().update(ctx, func(roles []models.Role) ([]models.Role, error) {
		if len(roles) >= models.MaxRoles {
			return nil, ErrRoleLimit
		}
		return append(roles, role), nil
	})
	if err != nil {
		return models.Role{}, err
	}
	return role, nil
}

func (r *RoleRepository) Update(ctx context.Context, id string, req models.UpdateRoleRequest) (models.Role, error) {
	return r.items().mutate(ctx, id, func(role *models.Role) error {
		next := *role
		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
		}
		if req.Statement != nil {
			next.Statement = strings.TrimSpace(*req.Statement)
		}
		if err := validateStruct(next); err != nil {
			return err
		}
		*role = next
		return nil
	})
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}
