package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrRelationNotFound = errors.New("employee company relation not found")
	ErrRelationInactive = errors.New("employee company relation is inactive")
)
