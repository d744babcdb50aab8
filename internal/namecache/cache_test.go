package namecache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"genpi/internal/namesource"
	"genpi/internal/namesource/mocks"
	"genpi/internal/pi/models"
	"genpi/internal/platform/metrics"
	"genpi/pkg/platform/sentinel"
)

type CacheSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *quartz.Mock
	source  *mocks.MockSource
	metrics *metrics.Metrics
	cache   *Cache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.clock = quartz.NewMock(s.T())
	s.source = mocks.NewMockSource(ctrl)
	s.metrics = metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = New(s.source, logger, WithClock(s.clock), WithMetrics(s.metrics))
}

func (s *CacheSuite) outcomes(sex models.Sex, outcome string) float64 {
	return testutil.ToFloat64(s.metrics.CacheRequests.WithLabelValues(sex.String(), outcome))
}

func femaleNames() []models.Name {
	return []models.Name{
		{LastName: "山田", LastNameKana: "やまだ", FirstName: "花子", FirstNameKana: "はなこ"},
		{LastName: "佐藤", LastNameKana: "さとう", FirstName: "結衣", FirstNameKana: "ゆい"},
	}
}

func maleNames() []models.Name {
	return []models.Name{
		{LastName: "鈴木", LastNameKana: "すずき", FirstName: "太郎", FirstNameKana: "たろう"},
	}
}

func (s *CacheSuite) TestReusesListInsideWindow() {
	names := femaleNames()
	s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(names, nil).Times(1)

	for i := 0; i < 20; i++ {
		got, err := s.cache.Generate(s.ctx, models.SexFemale)
		s.Require().NoError(err)
		s.Contains(names, got)
		s.clock.Advance(200 * time.Millisecond)
	}
	// 20 requests span 3.8s of mock time.
	s.Equal(float64(1), s.outcomes(models.SexFemale, metrics.OutcomeFetched))
	s.Equal(float64(19), s.outcomes(models.SexFemale, metrics.OutcomeHit))
}

func (s *CacheSuite) TestWindowBoundaryIsInclusive() {
	s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(femaleNames(), nil).Times(1)

	_, err := s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL)
	_, err = s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().NoError(err)
}

func (s *CacheSuite) TestRefetchesOnceAfterWindow() {
	first := femaleNames()[:1]
	second := femaleNames()[1:]
	gomock.InOrder(
		s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(first, nil),
		s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(second, nil),
	)

	got, err := s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().NoError(err)
	s.Equal(first[0], got)

	s.clock.Advance(DefaultTTL + time.Millisecond)
	for i := 0; i < 5; i++ {
		got, err = s.cache.Generate(s.ctx, models.SexFemale)
		s.Require().NoError(err)
		s.Equal(second[0], got)
	}
	s.Equal(float64(2), s.outcomes(models.SexFemale, metrics.OutcomeFetched))
}

func (s *CacheSuite) TestHonoursCustomTTL() {
	s.cache = New(s.source, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(s.clock), WithTTL(time.Minute))
	s.source.EXPECT().Fetch(gomock.Any(), models.SexMale).Return(maleNames(), nil).Times(1)

	_, err := s.cache.Generate(s.ctx, models.SexMale)
	s.Require().NoError(err)
	s.clock.Advance(30 * time.Second)
	_, err = s.cache.Generate(s.ctx, models.SexMale)
	s.Require().NoError(err)
}

func (s *CacheSuite) TestFailedRefreshRetainsStaleNames() {
	names := femaleNames()
	upstream := errors.New("connection reset")
	gomock.InOrder(
		s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(names, nil),
		s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).
			Return(nil, errors.Join(namesource.ErrFetchFailed, upstream)),
	)

	_, err := s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL + time.Second)
	_, err = s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().ErrorIs(err, namesource.ErrFetchFailed)
	s.ErrorIs(err, upstream)

	// Served from the retained list without another fetch.
	s.clock.Advance(time.Second)
	got, err := s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().NoError(err)
	s.Contains(names, got)
	s.Equal(float64(1), s.outcomes(models.SexFemale, metrics.OutcomeFetchFailed))
}

func (s *CacheSuite) TestEmptySlotKeepsFailing() {
	s.source.EXPECT().Fetch(gomock.Any(), models.SexMale).
		Return(nil, namesource.ErrFetchFailed).Times(3)

	for i := 0; i < 3; i++ {
		_, err := s.cache.Generate(s.ctx, models.SexMale)
		s.Require().ErrorIs(err, namesource.ErrFetchFailed)
	}
}

func (s *CacheSuite) TestEmptyListIsFailure() {
	s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return([]models.Name{}, nil)

	_, err := s.cache.Generate(s.ctx, models.SexFemale)
	s.Require().ErrorIs(err, namesource.ErrFetchFailed)
	s.Contains(err.Error(), "empty name list")
}

func (s *CacheSuite) TestSexesAreIndependent() {
	s.source.EXPECT().Fetch(gomock.Any(), models.SexFemale).Return(femaleNames(), nil).Times(1)
	s.source.EXPECT().Fetch(gomock.Any(), models.SexMale).Return(maleNames(), nil).Times(1)

	for i := 0; i < 3; i++ {
		f, err := s.cache.Generate(s.ctx, models.SexFemale)
		s.Require().NoError(err)
		s.Contains(femaleNames(), f)

		m, err := s.cache.Generate(s.ctx, models.SexMale)
		s.Require().NoError(err)
		s.Equal(maleNames()[0], m)
	}
}

func (s *CacheSuite) TestUnknownSex() {
	_, err := s.cache.Generate(s.ctx, models.Sex(7))
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown sex")
}

func (s *CacheSuite) TestFetchSurvivesCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.source.EXPECT().Fetch(gomock.Any(), models.SexMale).
		DoAndReturn(func(ctx context.Context, _ models.Sex) ([]models.Name, error) {
			s.NoError(ctx.Err())
			return maleNames(), nil
		})

	_, err := s.cache.Generate(ctx, models.SexMale)
	s.Require().NoError(err)
}

func TestConflictWhileSlotIsRefreshing(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	m := metrics.New()
	cache := New(source, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(quartz.NewMock(t)), WithMetrics(m))

	started := make(chan struct{})
	release := make(chan struct{})
	source.EXPECT().Fetch(gomock.Any(), models.SexFemale).
		DoAndReturn(func(context.Context, models.Sex) ([]models.Name, error) {
			close(started)
			<-release
			return femaleNames(), nil
		})
	source.EXPECT().Fetch(gomock.Any(), models.SexMale).Return(maleNames(), nil)

	type result struct {
		name models.Name
		err  error
	}
	done := make(chan result, 1)
	go func() {
		n, err := cache.Generate(context.Background(), models.SexFemale)
		done <- result{n, err}
	}()
	<-started

	_, err := cache.Generate(context.Background(), models.SexFemale)
	require.ErrorIs(t, err, sentinel.ErrConflict)

	// The other slot is not blocked by the refresh.
	_, err = cache.Generate(context.Background(), models.SexMale)
	require.NoError(t, err)

	close(release)
	res := <-done
	require.NoError(t, res.err)
	assert.Contains(t, femaleNames(), res.name)

	// Released after the refresh completes.
	_, err = cache.Generate(context.Background(), models.SexFemale)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheRequests.WithLabelValues("female", metrics.OutcomeConflict)))
}
