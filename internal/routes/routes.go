package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/handlers"
	"github.com/wardiya/storefront/internal/middleware"
	"github.com/wardiya/storefront/internal/session"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	manager *session.Manager,
	authHandler *handlers.AuthHandler,
	commerceHandler *handlers.CommerceHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
	revalidateHandler *handlers.RevalidateHandler,
	debugHandler *handlers.DebugHandler,
) {
	app.Get("/health", healthHandler.Health)
	app.Post("/revalidate", revalidateHandler.Revalidate)

	api := app.Group("/api",
		middleware.Session(manager),
		middleware.AttachVisitor(manager),
		middleware.Lang(),
	)

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/login", authHandler.Login)
	auth.Post("/phone/request", authHandler.RequestPhoneLogin)
	auth.Post("/phone/verify", authHandler.VerifyPhoneLogin)
	auth.Post("/password/forgot", authHandler.ForgotPassword)
	auth.Post("/password/reset", authHandler.ResetPassword)
	auth.Get("/session", authHandler.Session)
	auth.Get("/callback", authHandler.CheckAuthStatus)
	auth.Post("/logout", authHandler.Logout)

	cart := api.Group("/cart")
	cart.Get("/", commerceHandler.GetCart)
	cart.Post("/items", commerceHandler.AddToCart)
	cart.Put("/items/:productId", commerceHandler.UpdateCartItem)
	cart.Delete("/items/:productId", commerceHandler.RemoveCartItem)
	cart.Delete("/", commerceHandler.ClearCart)

	favorites := api.Group("/favorites")
	favorites.Get("/", commerceHandler.GetFavorites)
	favorites.Post("/", commerceHandler.AddFavorite)
	favorites.Delete("/:productId", commerceHandler.RemoveFavorite)
	favorites.Delete("/", commerceHandler.ClearFavorites)

	api.Get("/notifications", commerceHandler.Notifications)

	api.Get("/products", catalogHandler.Products)
	api.Get("/products/:slug", catalogHandler.Product)
	api.Get("/categories", catalogHandler.Categories)
	api.Get("/occasions", catalogHandler.Occasions)
	api.Get("/hero", catalogHandler.Hero)

	if cfg.Development() {
		debug := app.Group("/debug")
		debug.Get("/logs", debugHandler.Logs)
		debug.Delete("/logs", debugHandler.ClearLogs)
		debug.Post("/logs/visible", debugHandler.SetVisible)
	}
}
