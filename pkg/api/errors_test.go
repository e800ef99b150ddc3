package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
	"github.com/wavesplatform/gomint/pkg/errs"
)

func TestErrorHandler_Handle(t *testing.T) {
	var (
		mustJSON = func(err error) string {
			data, err := json.Marshal(err)
			require.NoError(t, err)
			return string(data)
		}
		unknownErr = apiErrs.NewUnknownError(errors.New("unknown"))
		defaultErr = errors.New("default")
		pausedErr  = errs.NewPausedError()
		ledgerErr  = func(err error) *apiErrs.LedgerError {
			le, ok := apiErrs.NewLedgerError(err)
			require.True(t, ok)
			return le
		}
	)
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "ApiErrorCase",
			err:          apiErrs.ErrCallerRequired,
			expectedCode: http.StatusBadRequest,
			expectedBody: mustJSON(apiErrs.ErrCallerRequired) + "\n",
		},
		{
			name:         "ApiErrorWithMultipleWraps",
			err:          errors.Wrap(errors.Wrap(apiErrs.ErrAPIKeyNotValid, "wrap1"), "wrap2"),
			expectedCode: http.StatusForbidden,
			expectedBody: mustJSON(apiErrs.ErrAPIKeyNotValid) + "\n",
		},
		{
			name:         "UnknownErrorCase",
			err:          unknownErr,
			expectedCode: unknownErr.GetHttpCode(),
			expectedBody: mustJSON(unknownErr) + "\n",
		},
		{
			name:         "LedgerErrorCase",
			err:          pausedErr,
			expectedCode: http.StatusConflict,
			expectedBody: mustJSON(ledgerErr(pausedErr)) + "\n",
		},
		{
			name:         "DefaultCase",
			err:          defaultErr,
			expectedCode: http.StatusInternalServerError,
			expectedBody: mustJSON(apiErrs.NewUnknownError(defaultErr)) + "\n",
		},
		{
			name:         "NilCase",
			err:          nil,
			expectedCode: 200,
			expectedBody: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				w = httptest.NewRecorder()
				r = httptest.NewRequest(http.MethodGet, "http://localhost:6870", nil)
			)
			h := NewErrorHandler(zap.NewNop())
			h.Handle(w, r, test.err)
			assert.Equal(t, test.expectedCode, w.Code)
			assert.Equal(t, test.expectedBody, w.Body.String())
		})
	}
}

func TestErrorHandlerCountsLedgerRejections(t *testing.T) {
	eh := NewErrorHandler(zap.NewNop())
	paused := metricLedgerRejections.WithLabelValues(errs.StateError.String())
	before := testutil.ToFloat64(paused)

	eh.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/assets", nil), errs.NewPausedError())
	eh.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil), apiErrs.ErrRouteNotFound)

	assert.Equal(t, before+1, testutil.ToFloat64(paused))
}
