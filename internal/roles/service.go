package roles

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/brightcart/brightcart/internal/audit"
	"github.com/brightcart/brightcart/internal/authz"
)

// Store is the persistence surface the service needs.
type Store interface {
	authz.RoleStore
	ListRoles(ctx context.Context) ([]authz.Role, error)
}

// AuditRecorder appends entries to the audit log.
type AuditRecorder interface {
	Append(ctx context.Context, entry audit.Entry) error
}

// AuditRetryEnqueuer hands a failed audit write to the background queue.
type AuditRetryEnqueuer interface {
	EnqueueAuditRetry(ctx context.Context, entry audit.Entry) error
}

// RejectionRecorder counts guard rejections for observability.
type RejectionRecorder interface {
	RecordGuardRejection(kind string)
}

// Service runs the guarded role-assignment flow: resolve the actor, validate
// the target role, pass the privilege guard, write the assignment and record
// the audit entry.
type Service struct {
	store    Store
	resolver *authz.Resolver
	guard    *authz.Guard
	auditor  AuditRecorder
	retry    AuditRetryEnqueuer
	metrics  RejectionRecorder
	logger   *slog.Logger
}

// NewService constructs a Service. retry and metrics may be nil.
func NewService(store Store, resolver *authz.Resolver, guard *authz.Guard, auditor AuditRecorder, retry AuditRetryEnqueuer, metrics RejectionRecorder, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		guard:    guard,
		auditor:  auditor,
		retry:    retry,
		metrics:  metrics,
		logger:   logger,
	}
}

// AssignRole reassigns the target user's role on behalf of the actor and
// returns the target's freshly resolved capabilities.
//
// The role write is all-or-nothing. The audit append is best-effort: a failed
// append never rolls back the assignment, it is logged and queued for retry
// instead.
func (s *Service) AssignRole(ctx context.Context, actorID, targetUserID, targetRoleID int64) (authz.Capabilities, error) {
	actorCaps, err := s.resolver.Resolve(ctx, &authz.Identity{ID: actorID})
	if err != nil {
		return authz.Capabilities{}, err
	}

	targetRole, err := s.store.FindRoleByID(ctx, targetRoleID)
	if err != nil {
		if authz.KindOf(err) == authz.KindNotFound {
			return authz.Capabilities{}, authz.Invalid("unknown role id %d", targetRoleID)
		}
		return authz.Capabilities{}, err
	}

	if err := s.guard.CheckAssign(actorCaps, targetRole); err != nil {
		if s.metrics != nil {
			s.metrics.RecordGuardRejection(string(authz.KindOf(err)))
		}
		return authz.Capabilities{}, err
	}

	prev, err := s.store.SetUserRole(ctx, targetUserID, targetRole.ID)
	if err != nil {
		if s.metrics != nil && authz.KindOf(err) == authz.KindValidation {
			s.metrics.RecordGuardRejection(string(authz.KindValidation))
		}
		return authz.Capabilities{}, err
	}

	s.recordAudit(ctx, actorID, targetUserID, prev, targetRole)

	return s.resolver.Resolve(ctx, &authz.Identity{ID: targetUserID})
}

func (s *Service) recordAudit(ctx context.Context, actorID, targetUserID int64, prev *authz.Role, next authz.Role) {
	fromName := "None"
	if prev != nil {
		fromName = prev.Name
	}
	// Stamp identity up front so a queued redelivery writes the same row the
	// failed synchronous append would have.
	entry := audit.Entry{
		ID:           uuid.NewString(),
		OccurredAt:   time.Now().UTC(),
		ActorID:      actorID,
		Action:       audit.ActionAssignRole,
		ResourceType: audit.ResourceUser,
		ResourceID:   strconv.FormatInt(targetUserID, 10),
		Details:      map[string]any{"from": fromName, "to": next.Name},
	}
	err := s.auditor.Append(ctx, entry)
	if err == nil {
		return
	}
	// Never silently dropped: log to the operational channel and queue a
	// redelivery. The role change stays committed regardless.
	if s.logger != nil {
		s.logger.Error("audit append failed",
			slog.Int64("actor_id", actorID),
			slog.Int64("target_user_id", targetUserID),
			slog.Any("error", err))
	}
	if s.retry != nil {
		if qerr := s.retry.EnqueueAuditRetry(ctx, entry); qerr != nil && s.logger != nil {
			s.logger.Error("audit retry enqueue failed", slog.Any("error", qerr))
		}
	}
}

// ListRoles returns all roles with their permission sets.
func (s *Service) ListRoles(ctx context.Context) ([]RoleWithPermissions, error) {
	list, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]RoleWithPermissions, 0, len(list))
	for _, role := range list {
		codes, err := s.store.ListRolePermissions(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, RoleWithPermissions{Role: role, Permissions: codes})
	}
	return result, nil
}

// GetRole returns one role with its permission set.
func (s *Service) GetRole(ctx context.Context, id int64) (RoleWithPermissions, error) {
	role, err := s.store.FindRoleByID(ctx, id)
	if err != nil {
		return RoleWithPermissions{}, err
	}
	codes, err := s.store.ListRolePermissions(ctx, role.ID)
	if err != nil {
		return RoleWithPermissions{}, err
	}
	return RoleWithPermissions{Role: role, Permissions: codes}, nil
}

// RoleWithPermissions pairs a role with its granted permission codes.
type RoleWithPermissions struct {
	Role        authz.Role `json:"role"`
	Permissions []string   `json:"permissions"`
}
