package services

import (
	"context"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/client"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

const MessageExerciseRegistered = "Exercise registered"

// CatalogService exposes the exercise catalogue and the user's history.
type CatalogService interface {
	Groups(ctx context.Context) ([]string, error)
	ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error)
	Exercise(ctx context.Context, id string) (models.Exercise, error)
	RegisterHistory(ctx context.Context, exerciseID string) error
	History(ctx context.Context) ([]models.HistoryDay, error)
}

type catalogService struct {
	client   client.CatalogClient
	notifier notify.Notifier
	log      logging.Logger
}

func NewCatalogService(c client.CatalogClient, n notify.Notifier, log logging.Logger) CatalogService {
	return &catalogService{client: c, notifier: n, log: log}
}

func (s *catalogService) Groups(ctx context.Context) ([]string, error) {
	groups, err := s.client.Groups(ctx)
	if err != nil {
		return nil, s.report(ctx, "groups", err, apperr.FallbackGroups)
	}
	return groups, nil
}

func (s *catalogService) ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error) {
	list, err := s.client.ExercisesByGroup(ctx, group)
	if err != nil {
		return nil, s.report(ctx, "exercises", err, apperr.FallbackExercises)
	}
	return list, nil
}

func (s *catalogService) Exercise(ctx context.Context, id string) (models.Exercise, error) {
	e, err := s.client.Exercise(ctx, id)
	if err != nil {
		return models.Exercise{}, s.report(ctx, "exercise", err, apperr.FallbackExercise)
	}
	return e, nil
}

func (s *catalogService) RegisterHistory(ctx context.Context, exerciseID string) error {
	if err := s.client.RegisterHistory(ctx, exerciseID); err != nil {
		return s.report(ctx, "register history", err, apperr.FallbackHistoryRegister)
	}
	s.log.Info(ctx, "exercise registered", "exercise_id", exerciseID)
	s.notifier.Show(ctx, MessageExerciseRegistered, apperr.SeveritySuccess)
	return nil
}

func (s *catalogService) History(ctx context.Context) ([]models.HistoryDay, error) {
	days, err := s.client.History(ctx)
	if err != nil {
		return nil, s.report(ctx, "history", err, apperr.FallbackHistory)
	}
	return days, nil
}

// report classifies err and shows it, unless the caller already went away.
func (s *catalogService) report(ctx context.Context, op string, err error, fallback string) error {
	e := apperr.Classify(err, fallback)
	if ctx.Err() != nil {
		s.log.Info(ctx, "request abandoned by caller", "op", op)
		return e
	}
	s.log.Warn(ctx, "request failed", "op", op, "kind", e.Kind, "error", e.Err)
	notify.Error(ctx, s.notifier, e)
	return e
}
