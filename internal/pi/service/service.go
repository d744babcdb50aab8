package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coder/quartz"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"genpi/internal/kana"
	"genpi/internal/namesource"
	"genpi/internal/pi/models"
	dErrors "genpi/pkg/domain-errors"
	"genpi/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks NameGenerator

// NameGenerator hands out a random name for a sex. The name cache is the
// production implementation.
type NameGenerator interface {
	Generate(ctx context.Context, sex models.Sex) (models.Name, error)
}

// Service assembles personal-information records.
type Service struct {
	names   NameGenerator
	logger  *slog.Logger
	clock   quartz.Clock
	tracer  trace.Tracer
	pickSex func() models.Sex
}

type Option func(*Service)

func WithClock(c quartz.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithSexPicker replaces the uniform draw over both sexes.
func WithSexPicker(pick func() models.Sex) Option {
	return func(s *Service) {
		s.pickSex = pick
	}
}

func New(names NameGenerator, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		names:   names,
		logger:  logger,
		clock:   quartz.NewReal(),
		tracer:  otel.Tracer("genpi/pi"),
		pickSex: models.RandomSex,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate draws a sex, takes a name for it, renders both readings in form
// and adds a random date of birth.
func (s *Service) Generate(ctx context.Context, form models.KanaForm) (models.PersonalInfo, error) {
	ctx, span := s.tracer.Start(ctx, "pi.Generate",
		trace.WithAttributes(attribute.String("kana_form", form.String())),
	)
	defer span.End()

	sex := s.pickSex()
	span.SetAttributes(attribute.String("sex", sex.String()))

	name, err := s.names.Generate(ctx, sex)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "name generation failed")
		return models.PersonalInfo{}, s.translateError(ctx, err)
	}

	rendered, err := name.InKanaForm(form)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "kana rendering failed")
		return models.PersonalInfo{}, s.translateError(ctx, err)
	}

	dob := models.GenerateDateOfBirth(s.clock.Now())
	return models.NewPersonalInfo(rendered, sex, dob), nil
}

// translateError maps infrastructure errors onto domain codes. Anything
// unrecognised is logged and reported as internal.
func (s *Service) translateError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "name list is being refreshed, try again")
	case errors.Is(err, namesource.ErrFetchFailed):
		s.logger.ErrorContext(ctx, "name source unavailable", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUpstreamFailure, "failed to fetch names from upstream")
	case errors.Is(err, kana.ErrNotHiragana):
		s.logger.ErrorContext(ctx, "reading is not hiragana", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to render kana")
	default:
		s.logger.ErrorContext(ctx, "personal info generation failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate personal info")
	}
}
