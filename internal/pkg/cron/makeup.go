package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
)

const defaultYearlyQuota = 3

type MakeupJobs struct {
	quotaRepo makeup.QuotaRepository
	location  *time.Location
}

func NewMakeupJobs(quotaRepo makeup.QuotaRepository, location *time.Location) *MakeupJobs {
	return &MakeupJobs{
		quotaRepo: quotaRepo,
		location:  location,
	}
}

func (j *MakeupJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reset_makeup_quota", 24*time.Hour, j.ResetYearlyQuota)
}

// ResetYearlyQuota seeds every employee's makeup quota for the new year.
// ResetAll is keyed on the year, so running it more than once on January 1st
// is harmless.
func (j *MakeupJobs) ResetYearlyQuota(ctx context.Context) error {
	now := time.Now().In(j.location)
	if now.Month() != time.January || now.Day() != 1 {
		return nil
	}

	if err := j.quotaRepo.ResetAll(ctx, now.Year(), defaultYearlyQuota); err != nil {
		return fmt.Errorf("failed to reset makeup quotas: %w", err)
	}

	slog.Info("Cron: Makeup quotas reset", "year", now.Year(), "total", defaultYearlyQuota)
	return nil
}
