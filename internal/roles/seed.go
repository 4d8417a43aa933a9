package roles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/platform/db"
)

// Seed upserts the bootstrap permissions, roles and grants. Safe to re-run:
// permissions keep their identity on conflict and role grants are replaced
// with the seeded set.
func (r *Repository) Seed(ctx context.Context, perms []authz.PermissionSeed, roleSeeds []authz.RoleSeed) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		permIDs := make(map[string]int64, len(perms))
		for _, p := range perms {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO permissions (code, display_name, description, category)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (code) DO UPDATE SET
					display_name = EXCLUDED.display_name,
					description = EXCLUDED.description,
					category = EXCLUDED.category
				RETURNING id`,
				p.Code, p.DisplayName, p.Description, p.Category).Scan(&id)
			if err != nil {
				return fmt.Errorf("seed permission %s: %w", p.Code, err)
			}
			permIDs[p.Code] = id
		}

		for _, seed := range roleSeeds {
			var roleID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO roles (name, display_name, description, level)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (name) DO UPDATE SET
					display_name = EXCLUDED.display_name,
					description = EXCLUDED.description,
					level = EXCLUDED.level
				RETURNING id`,
				seed.Name, seed.DisplayName, seed.Description, seed.Level).Scan(&roleID)
			if err != nil {
				return fmt.Errorf("seed role %s: %w", seed.Name, err)
			}

			if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
				return fmt.Errorf("reset grants for %s: %w", seed.Name, err)
			}
			for _, code := range seed.Permissions {
				permID, ok := permIDs[code]
				if !ok {
					return fmt.Errorf("role %s references unseeded permission %s", seed.Name, code)
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
					roleID, permID); err != nil {
					return fmt.Errorf("grant %s to %s: %w", code, seed.Name, err)
				}
			}
		}
		return nil
	})
}
