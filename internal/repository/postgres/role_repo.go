package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"schedulepager/internal/domain"
)

const roleColumns = `r.id, r.code`

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func scanRole(row rowScanner) (*domain.Role, error) {
	role := &domain.Role{}
	if err := row.Scan(&role.ID, &role.Code); err != nil {
		return nil, err
	}
	return role, nil
}

// GetByCode looks a role up by its code, ignoring case and surrounding spaces.
func (r *roleRepository) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles r WHERE r.code = $1`
	role, err := scanRole(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(code))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return role, err
}

// ListByUserID returns the user's roles ordered by code, so issued tokens list them stably.
func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	query := `
		SELECT ` + roleColumns + `
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.code
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
