package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Database table names
	TableModules         = "modules"
	TableSubModules      = "sub_modules"
	TablePermissions     = "permissions"
	TableRoles           = "roles"
	TableUsers           = "users"
	TableUserRoles       = "user_roles"
	TableRolePermissions = "role_permissions"
	TableCasbinRules     = "casbin_rule"

	// Field limits
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxIconLength        = 50
	MaxURLLength         = 200
	MaxEmailLength       = 150
	MaxPhoneLength       = 20
	MinPasswordLength    = 8

	// Full case folding turns one rune into at most three.
	MaxNameKeyLength  = 3 * MaxNameLength
	MaxEmailKeyLength = 3 * MaxEmailLength

	// Policy subject prefixes
	SubjectUserPrefix      = "user:"
	SubjectRolePrefix      = "role:"
	ObjectPermissionPrefix = "perm:"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
