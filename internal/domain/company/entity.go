package company

import (
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/geo"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
)

// Company is an organization employees clock in against. Its coordinate is
// the anchor the scan reconciler verifies QR payloads and device positions
// against.
type Company struct {
	ID        string
	Name      string
	Location  geo.Point
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Relation attaches an employee to a company with a role. All attendance,
// leave and approval rows hang off the relation, not the employee, so an
// employee moving between companies keeps each company's history separate.
type Relation struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Role       user.Role
	ManagerID  *string
	Active     bool
	JoinedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
