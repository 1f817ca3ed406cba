package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"collabflow/internal/domain/request"
	"collabflow/internal/handler/api"
	"collabflow/internal/handler/middleware"
	"collabflow/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Requests     *api.RequestHandler
	Availability *api.AvailabilityHandler
	Trust        *api.TrustHandler
	Callbacks    *api.PaymentCallbackHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	brandOnly := authMiddleware.RequireRole(request.RoleBrand)
	creatorOnly := authMiddleware.RequireRole(request.RoleCreator)

	apiGroup := engine.Group("/api")
	{
		// authenticated by signature, not bearer token
		addRoutes(apiGroup.Group("/payments"), []route{
			{Method: http.MethodPost, Path: "/callback", Handler: h.Callbacks.Handle},
		})

		requests := apiGroup.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Requests.Create, Mw: []gin.HandlerFunc{brandOnly}},
				{Method: http.MethodGet, Path: "", Handler: h.Requests.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Requests.Get},
				{Method: http.MethodGet, Path: "/:id/negotiations", Handler: h.Requests.Negotiations},
				{Method: http.MethodGet, Path: "/:id/escrow", Handler: h.Requests.Escrow},
				{Method: http.MethodPost, Path: "/:id/view", Handler: h.Requests.View, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodPost, Path: "/:id/counter-offer", Handler: h.Requests.CounterOffer},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Requests.Accept},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: h.Requests.Decline, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Requests.Cancel, Mw: []gin.HandlerFunc{brandOnly}},
				{Method: http.MethodPost, Path: "/:id/sign", Handler: h.Requests.Sign},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Requests.InitializePayment, Mw: []gin.HandlerFunc{brandOnly}},
				{Method: http.MethodPost, Path: "/:id/payment/verify", Handler: h.Requests.VerifyPayment},
				{Method: http.MethodPost, Path: "/:id/content", Handler: h.Requests.SubmitContent, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodPost, Path: "/:id/revision", Handler: h.Requests.RequestRevision, Mw: []gin.HandlerFunc{brandOnly}},
				{Method: http.MethodPost, Path: "/:id/resume", Handler: h.Requests.Resume, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Requests.Approve, Mw: []gin.HandlerFunc{brandOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Requests.Complete},
			})
		}

		availability := apiGroup.Group("/availability")
		availability.Use(authMiddleware.RequireAuth())
		addRoutes(availability, []route{
			{Method: http.MethodPost, Path: "/check", Handler: h.Availability.Check},
		})

		creators := apiGroup.Group("/creators")
		creators.Use(authMiddleware.RequireAuth())
		{
			// static "me" routes win over ":id" in gin's tree
			addRoutes(creators, []route{
				{Method: http.MethodGet, Path: "/me/trust", Handler: h.Trust.Me, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodPost, Path: "/me/availability/slots", Handler: h.Availability.AddSlot, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodDelete, Path: "/me/availability/slots/:slotId", Handler: h.Availability.RemoveSlot, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Availability.Get},
				{Method: http.MethodPut, Path: "/:id/availability", Handler: h.Availability.Update, Mw: []gin.HandlerFunc{creatorOnly}},
				{Method: http.MethodGet, Path: "/:id/exposure", Handler: h.Trust.Exposure},
			})
		}
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
