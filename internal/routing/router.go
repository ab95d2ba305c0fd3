package routing

import (
	"context"
	"net/http"
	"time"

	"contacts-api/internal/config"
	"contacts-api/internal/handlers"
	"contacts-api/internal/managers"
	"contacts-api/internal/middleware"
	"contacts-api/internal/schemas"
	"contacts-api/internal/services"
	"contacts-api/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	apiName    = "Contacts API"
	apiVersion = "1.0.0"

	healthTimeout = 2 * time.Second
)

// Dependencies are the collaborators the router wires into handlers.
// RateLimiter may be nil, which disables rate limiting.
type Dependencies struct {
	DatabaseMgr managers.DatabaseMgr
	JWTMgr      managers.JWTMgr
	StorageMgr  managers.StorageMgr
	AuthService handlers.AuthFlows
	RateLimiter middleware.TokenBucket
}

func InitRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	router.ContextWithFallback = true
	// Initialize middleware
	setupCommonMiddleware(router, cfg)
	// Setup routes
	setupRoutes(router, cfg, deps)

	return router
}

func setupCommonMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	pool := deps.DatabaseMgr.GetPool()
	gate := services.NewAccessService(pool, deps.JWTMgr)

	// Set up version route
	router.GET("/", func(c *gin.Context) {
		utils.WriteAndLogResponse(c, &schemas.MetadataDTO{ApiVersion: apiVersion, ApiName: apiName}, http.StatusOK)
	})

	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, healthTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseUnavailable, http.StatusInternalServerError, err)
			return
		}
		utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: "Service is healthy"}, http.StatusOK)
	})

	authHdl := handlers.NewAuthHandler(deps.AuthService, cfg.PublicBaseURL)
	authRoutes(router.Group("/auth"), authHdl)

	contactHdl := handlers.NewContactHandler(services.NewContactService(pool))
	contactRouter := router.Group("/contacts")
	contactRouter.Use(middleware.Authenticate(gate))
	contactRoutes(contactRouter, contactHdl)

	userHdl := handlers.NewUserHandler(services.NewUserService(pool, deps.StorageMgr))
	userRouter := router.Group("/users")
	userRouter.Use(middleware.Authenticate(gate))
	userRoutes(userRouter, userHdl, gate, middleware.RateLimit(cfg.RateLimit, deps.RateLimiter))
}

func authRoutes(authRouter *gin.RouterGroup, authHdl handlers.AuthHdl) {
	authRouter.POST("/register", middleware.ValidateAndSanitizeStruct[schemas.RegistrationRequest](), authHdl.RegisterUser)
	authRouter.POST("/login", middleware.ValidateAndSanitizeStruct[schemas.LoginRequest](), authHdl.LoginUser)
	authRouter.GET("/confirmed_email/:token", authHdl.ConfirmEmail)
	authRouter.POST("/request_email", middleware.ValidateAndSanitizeStruct[schemas.RequestEmailRequest](), authHdl.RequestEmail)
	authRouter.POST("/reset_password", middleware.ValidateAndSanitizeStruct[schemas.ResetPasswordRequest](), authHdl.RequestPasswordReset)
	authRouter.GET("/confirm_reset_password/:token", authHdl.ConfirmPasswordReset)
}

func contactRoutes(contactRouter *gin.RouterGroup, contactHdl handlers.ContactHdl) {
	contactRouter.GET("", contactHdl.ListContacts)
	// Registered before /:contactId so that "birthdays" is never parsed as an id
	contactRouter.GET("/birthdays", contactHdl.UpcomingBirthdays)
	contactRouter.GET("/:contactId", contactHdl.GetContact)
	contactRouter.POST("", middleware.ValidateAndSanitizeStruct[schemas.CreateContactRequest](), contactHdl.CreateContact)
	contactRouter.PUT("/:contactId", middleware.ValidateAndSanitizeStruct[schemas.UpdateContactRequest](), contactHdl.UpdateContact)
	contactRouter.DELETE("/:contactId", contactHdl.DeleteContact)
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl, gate middleware.AccessGate, rateLimit gin.HandlerFunc) {
	userRouter.GET("/me", rateLimit, userHdl.GetCurrentUser)
	userRouter.PATCH("/avatar", middleware.RequireAdmin(gate), userHdl.UpdateAvatar)
}
