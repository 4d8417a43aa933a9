package authz

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedDecision struct {
	permission string
	allowed    bool
}

type stubRecorder struct {
	decisions []recordedDecision
}

func (r *stubRecorder) RecordDecision(permission string, allowed bool) {
	r.decisions = append(r.decisions, recordedDecision{permission, allowed})
}

func middlewareFixture(failReads error) (Middleware, *stubRecorder) {
	store := &stubStore{
		roles:       map[int64]Role{2: {ID: 2, Name: RoleAdmin, DisplayName: "Admin", Level: LevelAdmin}},
		userRoles:   map[int64]int64{10: 2},
		permissions: map[int64][]string{2: {PermManageUsers, PermViewUsers}},
		failReads:   failReads,
	}
	recorder := &stubRecorder{}
	return Middleware{Resolver: NewResolver(store), Metrics: recorder}, recorder
}

func serve(mw func(http.Handler) http.Handler, principal *Identity) *httptest.ResponseRecorder {
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if principal != nil {
		req = req.WithContext(ContextWithIdentity(req.Context(), principal))
	}
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestRequireAnyRejectsAnonymous(t *testing.T) {
	m, _ := middlewareFixture(nil)
	res := serve(m.RequireAny(PermManageUsers), nil)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.Code)
	}
}

func TestRequireAnyAllowsHolder(t *testing.T) {
	m, recorder := middlewareFixture(nil)
	res := serve(m.RequireAny(PermManageUsers, PermManageRoles), &Identity{ID: 10})
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}
	if len(recorder.decisions) != 1 || !recorder.decisions[0].allowed {
		t.Fatalf("decisions = %+v, want one allowed", recorder.decisions)
	}
}

func TestRequireAnyDeniesMissingPermission(t *testing.T) {
	m, recorder := middlewareFixture(nil)
	res := serve(m.RequireAny(PermAccessSystemSettings), &Identity{ID: 10})
	if res.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.Code)
	}
	if len(recorder.decisions) != 1 || recorder.decisions[0].allowed {
		t.Fatalf("decisions = %+v, want one denied", recorder.decisions)
	}
}

func TestRequireAllNeedsEveryPermission(t *testing.T) {
	m, _ := middlewareFixture(nil)
	if res := serve(m.RequireAll(PermManageUsers, PermViewUsers), &Identity{ID: 10}); res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}
	if res := serve(m.RequireAll(PermManageUsers, PermManageRoles), &Identity{ID: 10}); res.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.Code)
	}
}

func TestMiddlewareFailsClosedOnStoreError(t *testing.T) {
	m, _ := middlewareFixture(errors.New("connection refused"))
	res := serve(m.RequireAny(PermViewUsers), &Identity{ID: 10})
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", res.Code)
	}
}
