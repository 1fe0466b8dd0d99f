package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/satvicplanner/satvic-planner-go/internal/middleware"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	JWTSecret       string
	CORSOrigins     []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	Version         string
}

// Services bundles the business services the routes dispatch to.
type Services struct {
	Auth          *service.AuthService
	Profile       *service.ProfileService
	AI            *service.AIService
	Shopping      *service.ShoppingService
	MealPlans     *service.MealPlanService
	Recipes       *service.RecipeService
	Progress      *service.ProgressService
	Notifications *service.NotificationService
}

// NewRouter builds the full HTTP surface.
func NewRouter(cfg RouterConfig, svc Services, db Pinger, logger *slog.Logger) http.Handler {
	authH := NewAuthHandler(svc.Auth)
	profileH := NewProfileHandler(svc.Profile)
	aiH := NewAIHandler(svc.AI)
	shoppingH := NewShoppingHandler(svc.Shopping)
	mealPlanH := NewMealPlanHandler(svc.MealPlans)
	recipeH := NewRecipeHandler(svc.Recipes)
	progressH := NewProgressHandler(svc.Progress)
	notificationH := NewNotificationHandler(svc.Notifications)
	healthH := NewHealthHandler(db, cfg.Version)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(chimw.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimitWindow(cfg.RateLimitMax, cfg.RateLimitWindow))

		r.Get("/health", healthH.HandleHealth)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/register", authH.HandleRegister)
			r.Post("/auth/login", authH.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))

			r.Get("/auth/verify", authH.HandleVerify)

			r.Get("/users/profile", profileH.HandleGet)
			r.Put("/users/profile", profileH.HandleUpdate)

			r.Post("/ai/onboarding", aiH.HandleOnboarding)
			r.Post("/ai/chat", aiH.HandleChat)
			r.Post("/ai/generate-meal-plan", aiH.HandleGenerateMealPlan)
			r.Post("/ai/generate-recipe", aiH.HandleGenerateRecipe)

			r.Get("/shopping", shoppingH.HandleHistory)
			r.Post("/shopping/generate", shoppingH.HandleGenerate)

			r.Get("/meal-plans", mealPlanH.HandleList)
			r.Post("/meal-plans", mealPlanH.HandleSave)
			r.Post("/meal-plans/generate", aiH.HandleGenerateStructuredPlan)
			r.Get("/meal-plans/{id}", mealPlanH.HandleGet)
			r.Delete("/meal-plans/{id}", mealPlanH.HandleDelete)

			r.Get("/recipes", recipeH.HandleList)
			r.Post("/recipes", recipeH.HandleCreate)
			r.Get("/recipes/ai", aiH.HandleSuggestions)
			r.Get("/recipes/{id}", recipeH.HandleGet)

			r.Get("/progress", progressH.HandleList)
			r.Post("/progress", progressH.HandleRecord)
			r.Get("/progress/analytics", progressH.HandleAnalytics)

			r.Get("/notifications", notificationH.HandleList)
			r.Post("/notifications", notificationH.HandleCreate)
		})
	})

	return r
}
