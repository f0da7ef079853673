package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/chefcourse/backend/internal/api"
	"github.com/pageza/chefcourse/backend/internal/metrics"
	"github.com/pageza/chefcourse/backend/internal/middleware"
	"github.com/pageza/chefcourse/backend/internal/service"
)

// Deps are the collaborators the routes are built from. Metrics, Redis,
// DBPing and Images may be nil.
type Deps struct {
	Auth    service.IAuthService
	Tokens  middleware.TokenValidator
	Chefs   service.IChefService
	Recipes service.IRecipeService
	Courses service.ICourseService
	Images  service.IImageService

	Metrics *metrics.Metrics
	Redis   *redis.Client
	DBPing  api.Pinger
	Logger  *slog.Logger

	CORSOrigins    []string
	RequestTimeout time.Duration
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	if d.Images == nil {
		d.Images = service.NewImageService(nil, log)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
	}
	router.Use(middleware.CORS(d.CORSOrigins))
	if d.RequestTimeout > 0 {
		router.Use(middleware.Timeout(d.RequestTimeout))
	}
	router.Use(middleware.ErrorHandler(log))

	authHandler := api.NewAuthHandler(d.Auth, d.Metrics, log)
	recipeHandler := api.NewRecipeHandler(d.Recipes, d.Metrics)
	chefHandler := api.NewChefHandler(d.Chefs, d.Metrics)
	courseHandler := api.NewCourseHandler(d.Courses, d.Metrics)
	uploadHandler := api.NewUploadHandler(d.Images)
	healthHandler := api.NewHealthHandler(d.DBPing)

	requireAuth := middleware.AuthMiddleware(d.Tokens, d.Auth)
	loginLimit := middleware.NewLoginRateLimiter(d.Redis, log).Middleware(middleware.KeyByIP)
	recipeLimit := middleware.NewRecipeCreationRateLimiter(d.Redis, log).Middleware(middleware.KeyByUser)
	courseLimit := middleware.NewCourseCreationRateLimiter(d.Redis, log).Middleware(middleware.KeyByUser)

	router.GET("/health", healthHandler.Health)
	if d.Metrics != nil {
		router.GET("/metrics", d.Metrics.Handler())
	}

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", healthHandler.Health)

	auth := apiGroup.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", loginLimit, authHandler.Login)
		auth.POST("/request-reset", loginLimit, authHandler.RequestReset)
		auth.POST("/forget-password", loginLimit, authHandler.ForgetPassword)
	}

	apiGroup.GET("/user", requireAuth, authHandler.GetUser)

	recipes := apiGroup.Group("/recipes", requireAuth)
	{
		recipes.POST("", recipeLimit, recipeHandler.CreateRecipe)
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/:id", recipeHandler.GetRecipe)
	}

	chefs := apiGroup.Group("/chefs")
	{
		chefs.POST("/register", requireAuth, chefHandler.RegisterChef)
		chefs.GET("/:userId", chefHandler.GetChef)
	}

	courses := apiGroup.Group("/courses")
	{
		courses.POST("", requireAuth, courseLimit, courseHandler.CreateCourse)
		courses.GET("", courseHandler.ListCourses)
		courses.GET("/:id", courseHandler.GetCourse)
	}

	apiGroup.POST("/uploads/presign", requireAuth, uploadHandler.Presign)

	return router
}
