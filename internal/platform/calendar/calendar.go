// Package calendar mirrors scheduled tasks into Google Calendar.
//
// Tasks with a due time can carry a calendar event; this adapter creates,
// reschedules, and removes those events. Events default to one hour with a
// popup reminder ten minutes before the start.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jpcarmona/atenea/internal/config"
	"github.com/jpcarmona/atenea/internal/domain"
)

const (
	eventDuration   = time.Hour
	reminderMinutes = 10
)

// Service wraps the Google Calendar API for a single calendar.
type Service struct {
	svc        *calendar.Service
	calendarID string
	timezone   string
	location   *time.Location
	logger     *slog.Logger
}

// NewService creates a Service authenticated from the configured
// credentials file.
func NewService(ctx context.Context, cfg config.CalendarConfig, logger *slog.Logger) (*Service, error) {
	if cfg.CredentialsFile == "" {
		return nil, errors.New("calendar credentials file cannot be empty")
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown calendar timezone, falling back to fixed UTC-5 offset",
			"timezone", cfg.Timezone, "error", err)
		location = time.FixedZone("UTC-5", -5*60*60)
	}

	return &Service{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
		location:   location,
		logger:     logger.With("component", "calendar"),
	}, nil
}

// CreateEvent creates a one-hour event starting at startTime and returns the
// event ID.
func (s *Service) CreateEvent(ctx context.Context, summary, startTime string) (string, error) {
	start, err := s.parseStart(startTime)
	if err != nil {
		return "", err
	}
	end := start.Add(eventDuration)

	event := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}

	s.logger.Info("calendar event created", "event_id", created.Id, "summary", summary)
	return created.Id, nil
}

// UpdateEvent applies the given changes to an existing event. Rescheduling
// keeps the one-hour duration.
func (s *Service) UpdateEvent(ctx context.Context, eventID string, updates domain.CalendarEventChange) error {
	if eventID == "" {
		return errors.New("event ID cannot be empty")
	}

	event, err := s.svc.Events.Get(s.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to fetch calendar event %s: %w", eventID, err)
	}

	if updates.Summary != "" {
		event.Summary = updates.Summary
	}

	// A bare date cannot reschedule a timed event.
	if strings.Contains(updates.Start, "T") {
		start, err := s.parseStart(updates.Start)
		if err != nil {
			return err
		}
		end := start.Add(eventDuration)
		event.Start = &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.timezone,
		}
		event.End = &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.timezone,
		}
	}

	if _, err := s.svc.Events.Update(s.calendarID, eventID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update calendar event %s: %w", eventID, err)
	}

	s.logger.Info("calendar event updated", "event_id", eventID)
	return nil
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return errors.New("event ID cannot be empty")
	}

	if err := s.svc.Events.Delete(s.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}

	s.logger.Info("calendar event deleted", "event_id", eventID)
	return nil
}

// parseStart accepts an RFC 3339 timestamp or a naive local timestamp, which
// is interpreted in the configured timezone.
func (s *Service) parseStart(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, s.location); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized event start time: %q", value)
}
