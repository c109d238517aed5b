// Package access answers authorization questions for users and exports the
// resolved grant graph to the policy enforcer.
package access

import (
	"context"
	"fmt"

	"warden/internal/domain/permission"
	permissionInfra "warden/internal/infrastructure/permission"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

type Service struct {
	grants   permission.GrantReader
	enforcer permission.PolicyEnforcer
	sync     *permissionInfra.PolicySync
	logger   logger.Interface
}

func NewService(
	grants permission.GrantReader,
	enforcer permission.PolicyEnforcer,
	tx db.Transactor,
	logger logger.Interface,
) *Service {
	return &Service{
		grants:   grants,
		enforcer: enforcer,
		sync:     permissionInfra.NewPolicySync(grants, enforcer, tx, logger),
		logger:   logger,
	}
}

// ResolveEffectivePermissions reads the store directly.
func (s *Service) ResolveEffectivePermissions(ctx context.Context, userID uint) ([]*permission.Permission, error) {
	perms, err := s.grants.EffectivePermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve effective permissions: %w", err)
	}
	return perms, nil
}

// HasPermission reads the store directly and never consults the snapshot.
func (s *Service) HasPermission(ctx context.Context, userID, permissionID uint) (bool, error) {
	return s.grants.HasPermission(ctx, userID, permissionID)
}

// SyncPolicies rebuilds the enforcer snapshot from the store.
func (s *Service) SyncPolicies(ctx context.Context) (*permissionInfra.SyncResult, error) {
	return s.sync.Sync(ctx)
}

// Enforce answers from the last synced snapshot.
func (s *Service) Enforce(userID, permissionID uint) (bool, error) {
	allowed, err := s.enforcer.Enforce(userID, permissionID)
	if err != nil {
		s.logger.Errorw("policy check failed", "user_id", userID, "permission_id", permissionID, "error", err)
		return false, err
	}
	return allowed, nil
}

// SnapshotPermissions lists the permission ids the snapshot grants the user.
func (s *Service) SnapshotPermissions(userID uint) ([]uint, error) {
	return s.enforcer.GetPermissionsForUser(userID)
}

func (s *Service) SnapshotRoles(userID uint) ([]uint, error) {
	return s.enforcer.GetRolesForUser(userID)
}
