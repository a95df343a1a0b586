package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/admin-AK47/MRBS/internal/model"
)

// errNoUser is returned by getUserID when the JWT middleware did not
// leave a usable subject in the context.
var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's ID stored by the JWT
// middleware. Handlers translate a failure into 401.
func getUserID(c echo.Context) (uint64, error) {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return 0, errNoUser
	}
	return uid, nil
}

// isAdmin reports whether the authenticated caller carries the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}
