package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/platform/db"
)

const pgErrForeignKeyViolation = "23503"

// Repository is the PostgreSQL implementation of authz.RoleStore.
type Repository struct {
	pool *pgxpool.Pool
	cfg  authz.GuardConfig
}

// NewRepository constructs a repository. The guard config controls whether
// SetUserRole refuses to demote the last holder of the ceiling role.
func NewRepository(pool *pgxpool.Pool, cfg authz.GuardConfig) *Repository {
	return &Repository{pool: pool, cfg: cfg}
}

const roleColumns = "id, name, display_name, description, level"

func scanRole(row pgx.Row) (authz.Role, error) {
	var role authz.Role
	err := row.Scan(&role.ID, &role.Name, &role.DisplayName, &role.Description, &role.Level)
	return role, err
}

// FindRoleByID fetches a role by primary key.
func (r *Repository) FindRoleByID(ctx context.Context, id int64) (authz.Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authz.Role{}, authz.NotFound("role %d does not exist", id)
		}
		return authz.Role{}, authz.Unavailable(err, "find role by id")
	}
	return role, nil
}

// FindRoleByName fetches a role by its unique name.
func (r *Repository) FindRoleByName(ctx context.Context, name string) (authz.Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authz.Role{}, authz.NotFound("role %s does not exist", name)
		}
		return authz.Role{}, authz.Unavailable(err, "find role by name")
	}
	return role, nil
}

// FindPermissionByName fetches a permission by code.
func (r *Repository) FindPermissionByName(ctx context.Context, code string) (authz.Permission, error) {
	var p authz.Permission
	err := r.pool.QueryRow(ctx,
		`SELECT code, display_name, description, category FROM permissions WHERE code = $1`, code).
		Scan(&p.Code, &p.DisplayName, &p.Description, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authz.Permission{}, authz.NotFound("permission %s does not exist", code)
		}
		return authz.Permission{}, authz.Unavailable(err, "find permission")
	}
	return p, nil
}

// GetUserRole returns the user's assigned role, nil when the user has none.
func (r *Repository) GetUserRole(ctx context.Context, userID int64) (*authz.Role, error) {
	var roleID *int64
	err := r.pool.QueryRow(ctx, `SELECT role_id FROM users WHERE id = $1`, userID).Scan(&roleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, authz.NotFound("user %d does not exist", userID)
		}
		return nil, authz.Unavailable(err, "load user")
	}
	if roleID == nil {
		return nil, nil
	}
	role, err := r.FindRoleByID(ctx, *roleID)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRolePermissions returns the permission codes granted to a role.
func (r *Repository) ListRolePermissions(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.code
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.code`, roleID)
	if err != nil {
		return nil, authz.Unavailable(err, "list role permissions")
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, authz.Unavailable(err, "scan role permission")
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, authz.Unavailable(err, "list role permissions")
	}
	return codes, nil
}

// SetUserRole writes the assignment under a row lock on the target user, so
// two concurrent assignments to the same user serialize and each one records
// the previous role it actually replaced. Returns the previous role.
func (r *Repository) SetUserRole(ctx context.Context, userID, roleID int64) (*authz.Role, error) {
	var prev *authz.Role
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var prevRoleID *int64
		if err := tx.QueryRow(ctx, `SELECT role_id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&prevRoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return authz.NotFound("user %d does not exist", userID)
			}
			return authz.Unavailable(err, "lock user row")
		}

		if prevRoleID != nil {
			role, err := scanRole(tx.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, *prevRoleID))
			if err != nil {
				return authz.Unavailable(err, "load previous role")
			}
			prev = &role

			if r.cfg.ProtectLastSuperAdmin && role.Level == authz.LevelSuperAdmin && roleID != role.ID {
				var holders int64
				if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, role.ID).Scan(&holders); err != nil {
					return authz.Unavailable(err, "count ceiling role holders")
				}
				if holders <= 1 {
					return authz.Invalid("cannot demote the last %s", role.Name)
				}
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET role_id = $2, updated_at = NOW() WHERE id = $1`, userID, roleID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
				return authz.Invalid("unknown role id %d", roleID)
			}
			return authz.Unavailable(err, "write user role")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prev, nil
}

// ListRoles returns all roles ordered by level, most privileged first.
func (r *Repository) ListRoles(ctx context.Context) ([]authz.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY level, name`)
	if err != nil {
		return nil, authz.Unavailable(err, "list roles")
	}
	defer rows.Close()

	var result []authz.Role
	for rows.Next() {
		var role authz.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.DisplayName, &role.Description, &role.Level); err != nil {
			return nil, authz.Unavailable(err, "scan role")
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, authz.Unavailable(err, "list roles")
	}
	return result, nil
}
