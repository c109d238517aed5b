package permission

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/shared/constants"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils/setutil"
)

var _ permission.PolicyEnforcer = (*Enforcer)(nil)

// policyModel grants a user a permission object through any of its roles.
const policyModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	adapter  persist.Adapter
	db       *gorm.DB
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an empty in-memory enforcer.
func NewEnforcer(log logger.Interface) (*Enforcer, error) {
	enforcer, err := newCasbinEnforcer()
	if err != nil {
		return nil, err
	}
	return &Enforcer{enforcer: enforcer, logger: log}, nil
}

// NewPersistentEnforcer stores the snapshot in the casbin rule table and
// starts from whatever was saved there last.
func NewPersistentEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", constants.TableCasbinRules)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		adapter:  adapter,
		db:       db,
		logger:   log,
	}, nil
}

func newCasbinEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	return enforcer, nil
}

func userSubject(id uint) string {
	return constants.SubjectUserPrefix + strconv.FormatUint(uint64(id), 10)
}

func roleSubject(id uint) string {
	return constants.SubjectRolePrefix + strconv.FormatUint(uint64(id), 10)
}

func permissionObject(id uint) string {
	return constants.ObjectPermissionPrefix + strconv.FormatUint(uint64(id), 10)
}

func parseID(prefix, value string) (uint, bool) {
	if !strings.HasPrefix(value, prefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(value, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (e *Enforcer) Enforce(userID, permissionID uint) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(userSubject(userID), permissionObject(permissionID))
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "user_id", userID, "permission_id", permissionID)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Replace swaps the whole policy set. The new set is built aside and only
// becomes visible once complete (and saved, for a persistent enforcer).
func (e *Enforcer) Replace(grants []permission.RoleGrant, assignments []permission.RoleAssignment) error {
	next, err := newCasbinEnforcer()
	if err != nil {
		return err
	}

	policies := make([][]string, 0, len(grants))
	for _, g := range grants {
		policies = append(policies, []string{roleSubject(g.RoleID), permissionObject(g.PermissionID)})
	}
	if len(policies) > 0 {
		if _, err := next.AddPolicies(policies); err != nil {
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}

	links := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		links = append(links, []string{userSubject(a.UserID), roleSubject(a.RoleID)})
	}
	if len(links) > 0 {
		if _, err := next.AddGroupingPolicies(links); err != nil {
			return fmt.Errorf("failed to add role links: %w", err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.savePolicy(policies, links); err != nil {
			e.logger.Errorw("failed to save policy", "error", err)
			return fmt.Errorf("failed to save policy: %w", err)
		}
		next.SetAdapter(e.adapter)
	}
	e.enforcer = next

	e.logger.Infow("policy replaced", "policies", len(policies), "role_links", len(links))
	return nil
}

// savePolicy rewrites the rule table in one transaction so readers of the
// table never see a half-written snapshot.
func (e *Enforcer) savePolicy(policies, links [][]string) error {
	rules := make([]gormadapter.CasbinRule, 0, len(policies)+len(links))
	for _, p := range policies {
		rules = append(rules, gormadapter.CasbinRule{Ptype: "p", V0: p[0], V1: p[1]})
	}
	for _, g := range links {
		rules = append(rules, gormadapter.CasbinRule{Ptype: "g", V0: g[0], V1: g[1]})
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(constants.TableCasbinRules).Where("1 = 1").Delete(&gormadapter.CasbinRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Table(constants.TableCasbinRules).CreateInBatches(rules, 200).Error
	})
}

func (e *Enforcer) GetRolesForUser(userID uint) ([]uint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roles, err := e.enforcer.GetRolesForUser(userSubject(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get roles for user: %w", err)
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		if id, ok := parseID(constants.SubjectRolePrefix, r); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetPermissionsForUser returns the distinct permission ids reachable
// through the user's roles, ascending.
func (e *Enforcer) GetPermissionsForUser(userID uint) ([]uint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules, err := e.enforcer.GetImplicitPermissionsForUser(userSubject(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions for user: %w", err)
	}

	ids := setutil.NewUintSetWithCap(len(rules))
	for _, rule := range rules {
		if len(rule) < 2 {
			continue
		}
		if id, ok := parseID(constants.ObjectPermissionPrefix, rule[1]); ok {
			ids.Add(id)
		}
	}
	return ids.Sorted(), nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return nil
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
