package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"genpi/internal/namesource"
	"genpi/internal/pi/handler/mocks"
	"genpi/internal/pi/models"
	"genpi/internal/pi/service"
	serviceMocks "genpi/internal/pi/service/mocks"
	dErrors "genpi/pkg/domain-errors"
	"genpi/pkg/platform/sentinel"
	"genpi/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) samplePI(kanaLast, kanaFirst string) models.PersonalInfo {
	dob, err := models.NewDateOfBirth(1990, 2, 28)
	s.Require().NoError(err)
	return models.PersonalInfo{
		DateOfBirth:   dob,
		FirstName:     "太郎",
		FirstNameKana: kanaFirst,
		LastName:      "山田",
		LastNameKana:  kanaLast,
		Sex:           models.SexMale,
	}
}

func (s *HandlerSuite) TestSelectsKanaFormFromQuery() {
	cases := []struct {
		query string
		form  models.KanaForm
	}{
		{"/", models.KanaFormHiragana},
		{"/?katakana=false", models.KanaFormHiragana},
		{"/?katakana=true", models.KanaFormKatakana},
		{"/?katakana=1&halfwidth=0", models.KanaFormKatakana},
		{"/?katakana=true&halfwidth=true", models.KanaFormHalfwidth},
		{"/?halfwidth=false", models.KanaFormHiragana},
		{"/?katakana=", models.KanaFormHiragana},
		{"/?katakana=TRUE&halfwidth=t", models.KanaFormHalfwidth},
	}
	for _, tc := range cases {
		s.Run(tc.query, func() {
			s.service.EXPECT().Generate(gomock.Any(), tc.form).Return(s.samplePI("やまだ", "たろう"), nil)

			rr := testutil.DoGet(s.router, tc.query)
			s.Equal(http.StatusOK, rr.Code)
			body := testutil.DecodeJSON(s.T(), rr)
			s.Equal("1990-02-28", body["date_of_birth"])
			s.Equal("male", body["sex"])
		})
	}
}

func (s *HandlerSuite) TestRejectsInvalidQuery() {
	for _, target := range []string{
		"/?halfwidth=true",
		"/?katakana=false&halfwidth=true",
		"/?katakana=yes",
		"/?katakana=true&halfwidth=maybe",
	} {
		s.Run(target, func() {
			rr := testutil.DoGet(s.router, target)
			testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
			s.NotEmpty(testutil.DecodeJSON(s.T(), rr)["error_description"])
		})
	}
}

func (s *HandlerSuite) TestMapsServiceErrors() {
	cases := []struct {
		name   string
		err    error
		status int
		code   dErrors.Code
	}{
		{"conflict", dErrors.Wrap(sentinel.ErrConflict, dErrors.CodeConflict, "busy"), http.StatusConflict, dErrors.CodeConflict},
		{"upstream", dErrors.Wrap(namesource.ErrFetchFailed, dErrors.CodeUpstreamFailure, "upstream"), http.StatusInternalServerError, dErrors.CodeUpstreamFailure},
		{"internal", fmt.Errorf("unexpected"), http.StatusInternalServerError, dErrors.CodeInternal},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.EXPECT().Generate(gomock.Any(), models.KanaFormHiragana).Return(models.PersonalInfo{}, tc.err)

			rr := testutil.DoGet(s.router, "/")
			testutil.AssertErrorResponse(s.T(), rr, tc.status, string(tc.code))
		})
	}
}

func (s *HandlerSuite) TestInternalErrorHidesDescription() {
	s.service.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(models.PersonalInfo{}, dErrors.New(dErrors.CodeInternal, "secret detail"))

	rr := testutil.DoGet(s.router, "/")
	body := testutil.DecodeJSON(s.T(), rr)
	s.NotContains(body, "error_description")
}

// Runs the real service behind the handler with only the name generator mocked.
func TestGenerateEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	names := serviceMocks.NewMockNameGenerator(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	New(service.New(names, logger), logger).Register(router)

	names.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Sex) (models.Name, error) {
			return models.NewName("山田", "やまだ", "太郎", "たろう")
		}).AnyTimes()

	testutil.Given(t, "a mocked name generator", func(t *testing.T) {
		testutil.When(t, "katakana and halfwidth are requested", func(t *testing.T) {
			rr := testutil.DoGet(router, "/?katakana=true&halfwidth=true")

			testutil.Then(t, "readings are half-width katakana", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
				body := testutil.DecodeJSON(t, rr)
				assert.Equal(t, "山田", body["last_name"])
				assert.Equal(t, "ﾔﾏﾀﾞ", body["last_name_kana"])
				assert.Equal(t, "太郎", body["first_name"])
				assert.Equal(t, "ﾀﾛｳ", body["first_name_kana"])
				assert.Contains(t, []any{"female", "male"}, body["sex"])

				raw, ok := body["date_of_birth"].(string)
				require.True(t, ok)
				_, err := models.ParseDateOfBirth(raw)
				assert.NoError(t, err)
			})
		})

		testutil.When(t, "halfwidth is requested alone", func(t *testing.T) {
			rr := testutil.DoGet(router, "/?halfwidth=true")

			testutil.Then(t, "the request is rejected", func(t *testing.T) {
				testutil.AssertErrorResponse(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
			})
		})
	})
}
