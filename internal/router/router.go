// Package router wires HTTP routes to their handlers and hangs the
// cross-cutting middleware (auth, roles, response cache, rate limits)
// on the right groups.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/admin-AK47/MRBS/internal/config"
	"github.com/admin-AK47/MRBS/internal/handler"
	"github.com/admin-AK47/MRBS/internal/middleware"
	"github.com/admin-AK47/MRBS/internal/model"
)

// Deps carries everything the route table needs.
type Deps struct {
	Cfg      config.Config
	CacheCfg config.CacheConfig
	LimitCfg config.RateLimitConfig
	Redis    *redis.Client
	Auth     *handler.AuthHandler
	Rooms    *handler.RoomHandler
	Bookings *handler.ReservationHandler
	Admin    *handler.AdminHandler
}

// Register attaches all routes to the Echo instance.
//
//	public:  health, auth, room catalog + availability search
//	user:    reservations and feedback (JWT, any role)
//	admin:   management console (JWT + admin role)
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	// Read-heavy public catalog: cached and rate limited.
	public := v1.Group("",
		middleware.RateLimit(d.LimitCfg, d.Redis),
		middleware.ResponseCache(d.CacheCfg, d.Redis),
	)
	public.GET("/rooms", d.Rooms.List)
	public.GET("/rooms/search", d.Rooms.Search)
	public.GET("/rooms/:id", d.Rooms.Get)
	public.GET("/rooms/:id/feedback", d.Rooms.ListFeedback)

	user := v1.Group("", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	user.GET("/me", d.Auth.Me)
	user.POST("/reservations", d.Bookings.Create)
	user.GET("/reservations", d.Bookings.ListMine)
	user.DELETE("/reservations/:id", d.Bookings.Cancel)
	user.POST("/reservations/:id/feedback", d.Bookings.SubmitFeedback)
	user.GET("/feedback", d.Bookings.ListMyFeedback)

	admin := v1.Group("/admin", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", d.Admin.ListUsers)
	admin.GET("/users/:id", d.Admin.GetUser)
	admin.PATCH("/users/:id/role", d.Admin.UpdateUserRole)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)
	admin.POST("/rooms", d.Admin.CreateRoom)
	admin.PUT("/rooms/:id", d.Admin.UpdateRoom)
	admin.DELETE("/rooms/:id", d.Admin.DeleteRoom)
	admin.GET("/reservations", d.Admin.ListReservations)
	admin.PATCH("/reservations/:id/status", d.Admin.OverrideReservationStatus)
	admin.GET("/feedback", d.Admin.ListFeedback)
	admin.DELETE("/feedback/:id", d.Admin.DeleteFeedback)
	admin.GET("/stats", d.Admin.ListStats)
	admin.GET("/stats/:id", d.Admin.RoomStats)
}
