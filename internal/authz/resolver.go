package authz

import "context"

// Resolver computes capability snapshots from the role store. Resolution is a
// pure read: no side effects, no caching across calls, safe for any number of
// concurrent callers. Freshness wins over latency, so every call reads the
// store again rather than trusting a previously resolved snapshot.
type Resolver struct {
	store RoleStore
}

// NewResolver constructs a Resolver.
func NewResolver(store RoleStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps a principal to its capability snapshot.
//
// A nil principal resolves to the Guest snapshot and an authenticated user
// without a role resolves to the User snapshot; neither is an error. The only
// failure mode is a store read failing, which surfaces as STORE_UNAVAILABLE
// with the Guest snapshot so a broken store never grants capabilities.
func (r *Resolver) Resolve(ctx context.Context, principal *Identity) (Capabilities, error) {
	if principal == nil {
		return GuestCapabilities(), nil
	}

	role, err := r.store.GetUserRole(ctx, principal.ID)
	if err != nil {
		if KindOf(err) != "" {
			return GuestCapabilities(), err
		}
		return GuestCapabilities(), Unavailable(err, "load user role")
	}
	if role == nil {
		return UnassignedCapabilities(), nil
	}

	codes, err := r.store.ListRolePermissions(ctx, role.ID)
	if err != nil {
		return GuestCapabilities(), Unavailable(err, "load role permissions")
	}
	return NewCapabilities(*role, codes), nil
}
