package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionChangePassword Permission = "profile.change_password"

	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceFix     Permission = "attendance.fix"

	// Leave
	PermissionLeaveApply   Permission = "leave.apply"
	PermissionLeaveViewOwn Permission = "leave.view_own"

	// Overtime
	PermissionOvertimeApply   Permission = "overtime.apply"
	PermissionOvertimeViewOwn Permission = "overtime.view_own"

	// Makeup clock
	PermissionMakeupApply   Permission = "makeup.apply"
	PermissionMakeupViewOwn Permission = "makeup.view_own"

	// Approvals
	PermissionApprove Permission = "approval.decide"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Companies
	PermissionCompanyManage Permission = "company.manage"
)

// selfServicePermissions are held by every role.
var selfServicePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionChangePassword,
	PermissionAttendanceClock,
	PermissionAttendanceViewOwn,
	PermissionLeaveApply,
	PermissionLeaveViewOwn,
	PermissionOvertimeApply,
	PermissionOvertimeViewOwn,
	PermissionMakeupApply,
	PermissionMakeupViewOwn,
}

// RolePermissions maps roles to their permissions. This gates route access;
// data-level scoping (own records, own approvals) happens in the services.
var RolePermissions = map[Role][]Permission{
	RoleEmployee: selfServicePermissions,
	RoleManager: append([]Permission{
		PermissionApprove,
		PermissionAttendanceViewAll,
		PermissionReportsView,
	}, selfServicePermissions...),
	RoleHRAdmin: append([]Permission{
		PermissionApprove,
		PermissionAttendanceViewAll,
		PermissionAttendanceFix,
		PermissionReportsView,
		PermissionCompanyManage,
	}, selfServicePermissions...),
	RoleCEO: append([]Permission{
		PermissionApprove,
		PermissionAttendanceViewAll,
		PermissionReportsView,
	}, selfServicePermissions...),
	RoleSystemAdmin: append([]Permission{
		PermissionApprove,
		PermissionAttendanceViewAll,
		PermissionAttendanceFix,
		PermissionReportsView,
		PermissionCompanyManage,
	}, selfServicePermissions...),
}

// HasPermission checks whether a role carries a permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// PermissionMap returns the permission-name to boolean mapping for a role,
// the shape clients consume to gate UI visibility.
func PermissionMap(role Role) map[Permission]bool {
	m := make(map[Permission]bool, len(RolePermissions[role]))
	for _, p := range RolePermissions[role] {
		m[p] = true
	}
	return m
}
