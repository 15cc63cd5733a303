package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicemarket/internal/domain/user"
	"servicemarket/internal/handler/api"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Address *api.AddressHandler
	Slot    *api.SlotHandler
	Review  *api.ReviewHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, metrics *middleware.Metrics) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, h, authMiddleware, metrics)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, metrics *middleware.Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", metrics.Handler())

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me,
					Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		addresses := apiGroup.Group("/addresses")
		addresses.Use(authMiddleware.RequireAuth())
		{
			addRoutes(addresses, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Address.CreateAddress},
				{Method: http.MethodGet, Path: "", Handler: h.Address.GetMyAddresses},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/estimate", Handler: h.Booking.Estimate},
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
				{Method: http.MethodGet, Path: "/my-bookings", Handler: h.Booking.GetMyBookings},
				{Method: http.MethodGet, Path: "/professional-bookings", Handler: h.Booking.GetProfessionalBookings,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProfessional)}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleProfessional)}},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: h.Booking.CancelBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
			})
		}

		professionals := apiGroup.Group("/professionals")
		{
			addRoutes(professionals, []route{
				{Method: http.MethodGet, Path: "/:id/slots", Handler: h.Slot.GetAvailableSlots},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.GetProfessionalReviews},
			})
		}

		slots := apiGroup.Group("/slots")
		slots.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleProfessional))
		{
			addRoutes(slots, []route{
				{Method: http.MethodPost, Path: "/generate", Handler: h.Slot.GenerateSlots},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleCustomer))
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.CreateReview},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
