package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteErrorRendersAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NotFound("product missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "NOT_FOUND", resp.Error.Code)
	require.Equal(t, "product missing", resp.Error.Message)
}

func TestWriteErrorMasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: connection reset"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection reset")
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := BadRequest("bad input", cause, nil)
	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestValidateReportsFieldDetails(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Count int    `validate:"gte=1"`
	}
	err := Validate(input{})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "BAD_REQUEST", appErr.Code)

	details, ok := appErr.Details.([]map[string]string)
	require.True(t, ok)
	require.Len(t, details, 2)
	require.Equal(t, "name", details[0]["field"])
	require.Equal(t, "required", details[0]["rule"])
}
