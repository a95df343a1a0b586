package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// post builds an echo context for a JSON POST as an authenticated user.
func post(t *testing.T, target, body string, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
		c.Set("role", "user")
	}
	return c, rec
}

func TestCreateReservationRejectsBadWindows(t *testing.T) {
	h := NewReservationHandler(nil, nil, nil, nil) // rejected before any repo call

	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "before opening",
			body: `{"room_id":1,"title":"standup","date":"2025-03-10","start":"08:30","end":"09:30"}`,
			want: "9 AM and 6 PM",
		},
		{
			name: "past closing",
			body: `{"room_id":1,"title":"retro","date":"2025-03-10","start":"17:30","end":"18:01"}`,
			want: "9 AM and 6 PM",
		},
		{
			name: "too short",
			body: `{"room_id":1,"title":"sync","date":"2025-03-10","start":"10:00","end":"10:15"}`,
			want: "30 minutes",
		},
		{
			name: "inverted window",
			body: `{"room_id":1,"title":"sync","date":"2025-03-10","start":"11:00","end":"10:00"}`,
			want: "30 minutes",
		},
		{
			name: "garbage time",
			body: `{"room_id":1,"title":"sync","date":"2025-03-10","start":"25:99","end":"10:00"}`,
			want: "invalid date or time",
		},
		{
			name: "missing fields",
			body: `{"room_id":1,"title":"sync"}`,
			want: "required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := post(t, "/v1/reservations", tc.body, 7)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	h := NewReservationHandler(nil, nil, nil, nil)
	c, rec := post(t, "/v1/reservations", `{"room_id":1}`, 0)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitFeedbackRejectsBadRating(t *testing.T) {
	h := NewReservationHandler(nil, nil, nil, nil)

	for _, body := range []string{
		`{"rating":0}`,
		`{"rating":6}`,
	} {
		c, rec := post(t, "/v1/reservations/3/feedback", body, 7)
		c.SetParamNames("id")
		c.SetParamValues("3")
		require.NoError(t, h.SubmitFeedback(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "rating")
	}
}

func TestCancelRejectsBadID(t *testing.T) {
	h := NewReservationHandler(nil, nil, nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	c.Set("role", "user")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
