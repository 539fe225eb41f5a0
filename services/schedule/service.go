package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	professionalRepo "trimly/database/repository/professional"
	"trimly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService computes bookable start times for a professional.
type AvailabilityService interface {
	// GetAvailableSlots returns the ordered "HH:MM" start times on the given
	// date ("YYYY-MM-DD") that can hold the requested duration, swept at
	// stepMinutes granularity.
	GetAvailableSlots(ctx context.Context, professionalID, date string, durationMinutes, stepMinutes int) ([]string, error)
	// InvalidateSlots drops cached results for the professional and date.
	InvalidateSlots(ctx context.Context, professionalID, date string)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Professionals professionalRepo.ProfessionalRepository
	Appointments  appointmentRepo.AppointmentRepository
	Cache         *redis.Client
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, professionalID, date string, durationMinutes, stepMinutes int) ([]string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	cacheKey := slotCacheKey(professionalID, date, durationMinutes, stepMinutes)
	if cached, ok := s.cachedSlots(ctx, cacheKey); ok {
		return cached, nil
	}

	// Fetch the weekly config and the day's committed appointments
	// concurrently; they live in independent collections.
	profCh := make(chan *models.Professional, 1)
	apptCh := make(chan []models.Appointment, 1)
	errCh := make(chan error, 2)

	go func() {
		prof, err := s.Professionals.GetByID(ctx, professionalID)
		if err != nil {
			errCh <- fmt.Errorf("failed to fetch professional: %w", err)
			return
		}
		profCh <- prof
	}()
	go func() {
		appts, err := s.Appointments.ListForProfessionalOnDay(ctx, professionalID, date,
			[]string{models.AppointmentConfirmed, models.AppointmentDone})
		if err != nil {
			errCh <- fmt.Errorf("failed to fetch appointments: %w", err)
			return
		}
		apptCh <- appts
	}()

	var prof *models.Professional
	var appts []models.Appointment
	for i := 0; i < 2; i++ {
		select {
		case prof = <-profCh:
		case appts = <-apptCh:
		case err := <-errCh:
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	daySchedule := prof.WorkingHours.ScheduleFor(int(day.Weekday()))
	busy := BusyFromDay(daySchedule, appts)
	slots := ComputeSlots(daySchedule, busy, durationMinutes, stepMinutes)

	s.storeSlots(ctx, cacheKey, slots)
	return slots, nil
}

// InvalidateSlots removes every cached sweep for the professional/date pair,
// whatever duration and step it was computed with.
func (s *DefaultAvailabilityService) InvalidateSlots(ctx context.Context, professionalID, date string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:%s:*", professionalID, date)
	iter := s.Cache.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.Logger.Warn("failed to drop cached slots", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.Logger.Warn("slot cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

func slotCacheKey(professionalID, date string, durationMinutes, stepMinutes int) string {
	return fmt.Sprintf("slots:%s:%s:%d:%d", professionalID, date, durationMinutes, stepMinutes)
}

// cachedSlots is best-effort: a cache miss or a redis failure both fall back
// to a fresh computation.
func (s *DefaultAvailabilityService) cachedSlots(ctx context.Context, key string) ([]string, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.Logger.Warn("slot cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		s.Logger.Warn("corrupt slot cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (s *DefaultAvailabilityService) storeSlots(ctx context.Context, key string, slots []string) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("slot cache write failed", zap.String("key", key), zap.Error(err))
	}
}
