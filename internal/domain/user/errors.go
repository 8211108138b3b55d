package user

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
