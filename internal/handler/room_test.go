package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchRejectsMissingParams(t *testing.T) {
	h := NewRoomHandler(nil, nil, nil)

	for _, target := range []string{
		"/v1/rooms/search",
		"/v1/rooms/search?date=2025-03-10",
		"/v1/rooms/search?date=2025-03-10&start=10:00",
	} {
		c, rec := get(target)
		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "required")
	}
}

func TestSearchRejectsMalformedWindow(t *testing.T) {
	h := NewRoomHandler(nil, nil, nil)

	c, rec := get("/v1/rooms/search?date=03-10-2025&start=10:00&end=11:00")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = get("/v1/rooms/search?date=2025-03-10&start=11:00&end=10:00")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end must be after start")
}

func TestGetRoomRejectsBadID(t *testing.T) {
	h := NewRoomHandler(nil, nil, nil)

	c, rec := get("/v1/rooms/zero")
	c.SetParamNames("id")
	c.SetParamValues("zero")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
