package routes

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Tags()
	c.Ingredients()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	// static segments before /:id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optionalAuth, c.UserHandler.GetUsers)
		user.Get("/me", authRequired, c.UserHandler.Me)
		user.Post("/set_password", authRequired, c.UserHandler.SetPassword)
		user.Get("/subscriptions", authRequired, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optionalAuth, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", authRequired, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", authRequired, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
}

func (c *Config) Recipes() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	recipes.Get("", optionalAuth, c.RecipeHandler.GetRecipes)
	recipes.Post("", authRequired, c.RecipeHandler.CreateRecipe)
	recipes.Get("/download_shopping_cart", authRequired, c.RecipeHandler.DownloadShoppingCart)

	recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", authRequired, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", authRequired, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", authRequired, c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", authRequired, c.RecipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", authRequired, c.RecipeHandler.AddShoppingCart)
	recipes.Delete("/:id/shopping_cart", authRequired, c.RecipeHandler.RemoveShoppingCart)
}
