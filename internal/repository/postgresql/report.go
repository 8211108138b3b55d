package postgresql

import (
	"context"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/report"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

// shortDayHours is the work-hour floor below which a closed day is flagged.
const shortDayHours = 4.0

// AttendanceSummary implements report.Repository.
func (r *reportRepository) AttendanceSummary(ctx context.Context, companyID string, month string) ([]*report.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.employee_id,
			e.name,
			COALESCE((
				SELECT COUNT(*) FROM attendance_records ar
				WHERE ar.relation_id = ecr.id AND ar.date LIKE $2 || '-%'
			), 0) AS present_days,
			COALESCE((
				SELECT SUM(ar.work_hours) FROM attendance_records ar
				WHERE ar.relation_id = ecr.id AND ar.date LIKE $2 || '-%'
			), 0) AS total_work_hours,
			COALESCE((
				SELECT SUM(lr.leave_hours) FROM leave_records lr
				WHERE lr.relation_id = ecr.id
					AND lr.status = 'approved'
					AND to_char(lr.start_time, 'YYYY-MM') = $2
			), 0) AS leave_hours,
			COALESCE((
				SELECT SUM(ot.overtime_hours) FROM overtime_records ot
				WHERE ot.relation_id = ecr.id
					AND ot.status = 'approved'
					AND ot.date LIKE $2 || '-%'
			), 0) AS overtime_hours
		FROM employee_company_relations ecr
		JOIN employees e ON e.employee_id = ecr.employee_id
		WHERE ecr.company_id = $1 AND ecr.active = TRUE
		ORDER BY e.employee_id
	`

	rows, err := q.Query(ctx, query, companyID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	defer rows.Close()

	var summary []*report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.PresentDays,
			&row.TotalWorkHours, &row.LeaveHours, &row.OvertimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, &row)
	}
	return summary, rows.Err()
}

// AnomalyList implements report.Repository.
//
// A single attendance row can surface more than once when it matches
// several anomaly kinds, which is what reviewers expect to see.
func (r *reportRepository) AnomalyList(ctx context.Context, companyID string, month string) ([]*report.AnomalyRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_id, e.name, ar.date, 'missing_checkout', ar.work_hours,
			'No clock-out recorded'
		FROM attendance_records ar
		JOIN employee_company_relations ecr ON ecr.id = ar.relation_id
		JOIN employees e ON e.employee_id = ecr.employee_id
		WHERE ecr.company_id = $1 AND ar.date LIKE $2 || '-%'
			AND ar.checkout_time = ar.checkin_time
			AND ar.date < to_char(NOW(), 'YYYY-MM-DD')

		UNION ALL

		SELECT e.employee_id, e.name, ar.date, 'short_day', ar.work_hours,
			'Worked less than ' || $3 || ' hours'
		FROM attendance_records ar
		JOIN employee_company_relations ecr ON ecr.id = ar.relation_id
		JOIN employees e ON e.employee_id = ecr.employee_id
		WHERE ecr.company_id = $1 AND ar.date LIKE $2 || '-%'
			AND ar.checkout_time > ar.checkin_time
			AND ar.work_hours < $3

		UNION ALL

		SELECT e.employee_id, e.name, ar.date, 'corrected_record', ar.work_hours,
			'Record was corrected after the fact'
		FROM attendance_records ar
		JOIN employee_company_relations ecr ON ecr.id = ar.relation_id
		JOIN employees e ON e.employee_id = ecr.employee_id
		WHERE ecr.company_id = $1 AND ar.date LIKE $2 || '-%'
			AND ar.corrected = TRUE

		ORDER BY 3, 1
	`

	rows, err := q.Query(ctx, query, companyID, month, shortDayHours)
	if err != nil {
		return nil, fmt.Errorf("failed to query anomaly list: %w", err)
	}
	defer rows.Close()

	var anomalies []*report.AnomalyRow
	for rows.Next() {
		var row report.AnomalyRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.Date,
			&row.Kind, &row.WorkHours, &row.Detail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan anomaly row: %w", err)
		}
		anomalies = append(anomalies, &row)
	}
	return anomalies, rows.Err()
}
