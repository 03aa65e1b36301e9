// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/clearpane/window-booking/internal/handler"
	"github.com/clearpane/window-booking/internal/middleware"
	"github.com/clearpane/window-booking/internal/model"
)

// Deps carries everything the route table needs.
type Deps struct {
	Settings *handler.SettingsHandler
	Bookings *handler.BookingHandler
	Auth     *handler.AuthHandler

	JWTSecret string

	// Redis is optional; without it the cache and rate limiter are
	// pass-throughs.
	Redis              *redis.Client
	CacheTTL           time.Duration
	RateCapacity       int
	RateRefillInterval time.Duration
}

// New builds the Echo instance with the full route table.
//
// Public surface: settings read, availability calendar, booking
// submission and the auth endpoints.  Everything else sits behind the
// JWT gate with the admin role required.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	e.GET("/healthz", handler.Health)

	cache := middleware.ResponseCache(d.Redis, d.CacheTTL)
	limit := middleware.RateLimit(d.Redis, d.RateCapacity, d.RateRefillInterval)

	api := e.Group("/api")
	api.GET("/settings", d.Settings.Get, cache)
	api.GET("/availability", d.Bookings.Availability, cache)
	api.POST("/bookings", d.Bookings.Create, limit)

	api.POST("/auth/login", d.Auth.Login, limit)
	api.POST("/auth/refresh", d.Auth.Refresh)
	api.POST("/auth/logout", d.Auth.Logout)

	admin := api.Group("", middleware.JWTAuth(d.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/bookings", d.Bookings.List)
	admin.POST("/settings", d.Settings.Update)
	admin.GET("/auth/me", d.Auth.Me)

	return e
}
