package rbac

// Default role policy for the portal. Roles come from the users table via the
// JWT claims; permissions gate the grading, ranking and quiz surfaces.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:submit",
		"attempt:view-own",
		"aggregate:view-own",
	},
	"teacher": {
		"quiz:submit", // manual resubmission on a student's behalf
		"ranking:view",
		"aggregate:view",
		"attempt:view-all",
	},
	"admin": {
		"*", // everything
	},
}
