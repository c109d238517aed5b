package permission

import (
	"context"
	"fmt"

	"warden/internal/domain/permission"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// PolicySync copies the active grant graph from the store into an enforcer.
type PolicySync struct {
	grants   permission.GrantReader
	enforcer permission.PolicyEnforcer
	tx       db.Transactor
	logger   logger.Interface
}

func NewPolicySync(grants permission.GrantReader, enforcer permission.PolicyEnforcer, tx db.Transactor, logger logger.Interface) *PolicySync {
	return &PolicySync{
		grants:   grants,
		enforcer: enforcer,
		tx:       tx,
		logger:   logger,
	}
}

// SyncResult counts the edges written to the enforcer.
type SyncResult struct {
	Policies  int
	RoleLinks int
}

func (s *PolicySync) Sync(ctx context.Context) (*SyncResult, error) {
	s.logger.Info("syncing permissions to casbin")

	// Both edge sets are read in one transaction. The enforcer is written
	// after it commits.
	var (
		grants      []permission.RoleGrant
		assignments []permission.RoleAssignment
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if grants, err = s.grants.ActiveRoleGrants(ctx); err != nil {
			return fmt.Errorf("failed to read role grants: %w", err)
		}
		if assignments, err = s.grants.ActiveRoleAssignments(ctx); err != nil {
			return fmt.Errorf("failed to read role assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.enforcer.Replace(grants, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace policies: %w", err)
	}

	s.logger.Infow("permissions synced to casbin",
		"policies", len(grants),
		"role_links", len(assignments))

	return &SyncResult{Policies: len(grants), RoleLinks: len(assignments)}, nil
}
