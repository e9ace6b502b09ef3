package handlers

import (
	_ "catalog/docs"
	"catalog/internal/middleware"
	"catalog/internal/models"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Router holds everything needed to mount the catalog API.
type Router struct {
	Categories *CategoryHandlers
	Products   *ProductHandlers
	Reviews    *ReviewHandlers
	Users      *UserHandlers
	Auth       *AuthHandlers
	Health     *HealthHandlers

	JWTConfig   echojwt.Config
	ActorLoader echo.MiddlewareFunc
	RBAC        *middleware.RBACMiddleware
	Version     *middleware.VersionMiddleware
}

// Register mounts health probes and the API docs at the root and the API under /v1. Reads are public; every
// mutation requires a bearer token and passes the role check for its action.
func (r *Router) Register(e *echo.Echo) {
	// Pre runs before routing, so "/v1/products/" resolves to the "/v1/products" route.
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)
	e.GET("/health/live", r.Health.LivenessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := r.Version.VersionRoute(e, "v1")

	auth := v1.Group("/auth")
	auth.POST("/register", r.Auth.Register)
	auth.POST("/login", r.Auth.Login)

	// Public reads
	v1.GET("/categories", r.Categories.ListCategories)
	v1.GET("/products", r.Products.ListProducts)
	v1.GET("/products/detail/:slug", r.Products.GetProduct)
	v1.GET("/products/:category_slug", r.Products.ListProductsByCategory)
	v1.GET("/reviews", r.Reviews.ListReviews)
	v1.GET("/reviews/product/:slug", r.Reviews.ListProductReviews)

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(r.JWTConfig))
	protected.Use(r.ActorLoader)

	protected.GET("/auth/me", r.Auth.Me)

	protected.POST("/categories", r.Categories.CreateCategory, r.RBAC.RequireAction(models.ActionCategoryWrite))
	protected.PUT("/categories/:id", r.Categories.UpdateCategory, r.RBAC.RequireAction(models.ActionCategoryWrite))
	protected.DELETE("/categories/:id", r.Categories.DeleteCategory, r.RBAC.RequireAction(models.ActionCategoryWrite))

	protected.POST("/products", r.Products.CreateProduct, r.RBAC.RequireAction(models.ActionProductCreate))
	protected.PUT("/products/:slug", r.Products.UpdateProduct, r.RBAC.RequireAction(models.ActionProductUpdate))
	protected.DELETE("/products/:slug", r.Products.DeleteProduct, r.RBAC.RequireAction(models.ActionProductDelete))
	protected.POST("/products/:slug/image", r.Products.UploadProductImage, r.RBAC.RequireAction(models.ActionProductUpdate))

	protected.POST("/reviews", r.Reviews.AddReview, r.RBAC.RequireAction(models.ActionReviewCreate))
	protected.DELETE("/reviews/:id", r.Reviews.DeleteReview, r.RBAC.RequireAction(models.ActionReviewDelete))

	protected.PATCH("/permission/:user_id", r.Users.TogglePermission, r.RBAC.RequireAction(models.ActionPermissionToggle))
	protected.DELETE("/permission/:user_id", r.Users.DeactivateUser, r.RBAC.RequireAction(models.ActionUserDeactivate))
}
