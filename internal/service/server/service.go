package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
	"github.com/oshokin/alarm-agenda/internal/logger"
	repo "github.com/oshokin/alarm-agenda/internal/repository/agenda"
)

// service encapsulates the alarm agenda logic and persistence orchestration.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of the agenda.
	repo repo.Repository
	// clock reports the current time for get_time_now.
	clock domain.Clock
	// mu serialises read-modify-write cycles so concurrent calls cannot lose updates.
	mu sync.Mutex
}

// newService creates a service backed by the provided repository and
// makes sure an empty agenda exists.
func newService(ctx context.Context, repository repo.Repository, clock domain.Clock) (*service, error) {
	if clock == nil {
		clock = domain.SystemClock{}
	}

	if err := repository.Init(ctx); err != nil {
		return nil, fmt.Errorf("initialise agenda store: %w", err)
	}

	return &service{
		repo:  repository,
		clock: clock,
	}, nil
}

// Now returns the current local time as "YYYY-MM-DD HH:MM:SS".
func (s *service) Now(ctx context.Context) string {
	now := domain.FormatTime(s.clock.Now())

	logger.DebugKV(ctx, "Current time requested", "now", now)

	return now
}

// SetAlarm stores the description at the timestamp's slot, overwriting any previous alarm.
func (s *service) SetAlarm(ctx context.Context, timestamp, description string) (*domain.Alarm, error) {
	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agenda, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	agenda.Set(slot, description)

	if err = s.repo.Save(ctx, agenda); err != nil {
		logger.Errorf(ctx, "Failed to persist agenda: %v", err)

		return nil, fmt.Errorf("persist agenda: %w", err)
	}

	logger.InfoKV(ctx, "Alarm set", "slot", slot.String(), "description", description)

	return &domain.Alarm{
		Datetime:    timestamp,
		Description: description,
	}, nil
}

// GetAlarm returns the alarm at the timestamp's slot or domain.ErrAlarmNotFound.
func (s *service) GetAlarm(ctx context.Context, timestamp string) (*domain.Alarm, error) {
	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agenda, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	description, err := agenda.Get(slot)
	if err != nil {
		logger.DebugKV(ctx, "Alarm lookup missed", "slot", slot.String())

		return nil, err
	}

	return &domain.Alarm{
		Datetime:    timestamp,
		Description: description,
	}, nil
}

// ListAlarms returns the whole agenda.
func (s *service) ListAlarms(ctx context.Context) (domain.Agenda, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agenda, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Alarms listed", "count", agenda.Len())

	return agenda, nil
}

// DeleteAlarm removes the alarm at the timestamp's slot or returns domain.ErrAlarmNotFound.
func (s *service) DeleteAlarm(ctx context.Context, timestamp string) error {
	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agenda, err := s.load(ctx)
	if err != nil {
		return err
	}

	if err = agenda.Delete(slot); err != nil {
		return err
	}

	if err = s.repo.Save(ctx, agenda); err != nil {
		logger.Errorf(ctx, "Failed to persist agenda: %v", err)

		return fmt.Errorf("persist agenda: %w", err)
	}

	logger.InfoKV(ctx, "Alarm deleted", "slot", slot.String())

	return nil
}

// load reads the agenda, treating a vanished store as empty. Callers hold mu.
func (s *service) load(ctx context.Context) (domain.Agenda, error) {
	agenda, err := s.repo.Load(ctx)

	switch {
	case err == nil:
		if agenda == nil {
			agenda = domain.NewAgenda()
		}

		return agenda, nil
	case errors.Is(err, repo.ErrNotFound):
		logger.Warnf(ctx, "Agenda store is missing, starting from an empty agenda")

		return domain.NewAgenda(), nil
	default:
		logger.Errorf(ctx, "Failed to load agenda: %v", err)

		return nil, fmt.Errorf("load agenda: %w", err)
	}
}
