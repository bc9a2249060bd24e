package handler

import (
	"net/http"

	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterDeps struct {
	Config          config.Config
	Logger          *middleware.Logger
	Bookings        *api.BookingHandler
	Auth            *middleware.AuthMiddleware
	SiteKey         middleware.SiteKeyVerifier
	RateLimiter     *middleware.RateLimiter
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, deps RouterDeps) {
	setupMiddleware(engine, deps)
	setupRoutes(engine, deps)
}

func setupMiddleware(engine *gin.Engine, deps RouterDeps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(deps.Config.CORS))
	engine.Use(deps.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, deps RouterDeps) {
	engine.GET("/health", healthCheck)
	if deps.MetricsGatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := deps.Bookings

	apiGroup := engine.Group("/api")
	apiGroup.Use(deps.Auth.RequireAuth())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/quotes", Handler: h.Quote},
			{Method: http.MethodPost, Path: "/availability", Handler: h.Availability},
		})

		// writes and documents need a recognised staff role
		staff := []gin.HandlerFunc{deps.Auth.RequireRoleAtLeast(jwt.RoleAgent)}
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "/validate", Handler: h.Validate},
			{Method: http.MethodPost, Path: "", Handler: h.Submit, Mw: staff},
			{Method: http.MethodGet, Path: "/:id/contract", Handler: h.Contract, Mw: staff},
		})
	}

	public := engine.Group("/public")
	public.Use(deps.RateLimiter.Middleware(), middleware.RequireSiteKey(deps.SiteKey))
	{
		addRoutes(public, []route{
			{Method: http.MethodPost, Path: "/quotes", Handler: h.PublicQuote},
			{Method: http.MethodPost, Path: "/bookings", Handler: h.PublicSubmit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
