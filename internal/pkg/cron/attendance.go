package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
)

type AttendanceJobs struct {
	attendanceRepo  attendance.Repository
	relationRepo    company.RelationRepository
	notificationSvc notification.Service
	location        *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	relationRepo company.RelationRepository,
	notificationSvc notification.Service,
	location *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		relationRepo:    relationRepo,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("remind_missing_checkout", 1*time.Hour, j.RemindMissingCheckout)
}

// RemindMissingCheckout notifies employees whose attendance row from a past
// day never got a clock-out, so they can file a makeup clock request.
func (j *AttendanceJobs) RemindMissingCheckout(ctx context.Context) error {
	// Only run in the first hour after local midnight
	if time.Now().In(j.location).Hour() != 0 {
		return nil
	}

	today := time.Now().In(j.location).Format("2006-01-02")

	openRecords, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open attendance records: %w", err)
	}

	if len(openRecords) == 0 {
		return nil
	}

	notified := 0
	for _, record := range openRecords {
		relation, err := j.relationRepo.GetByID(ctx, record.RelationID)
		if err != nil {
			slog.Error("Cron: Failed to resolve relation for open attendance",
				"attendance_id", record.ID, "relation_id", record.RelationID, "error", err)
			continue
		}

		err = j.notificationSvc.Notify(ctx, relation.EmployeeID,
			notification.TypeSystem,
			"Missing clock-out",
			fmt.Sprintf("Your attendance for %s has no clock-out. File a makeup clock request if you worked that day.", record.Date),
		)
		if err != nil {
			slog.Error("Cron: Failed to notify missing checkout",
				"attendance_id", record.ID, "error", err)
			continue
		}
		notified++
	}

	slog.Info("Cron: Missing checkout reminders sent", "count", notified)
	return nil
}
