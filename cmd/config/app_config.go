package config

import (
	"fmt"
	"foodgram/internal/api/handlers"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/membership"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// Services bundles the core services so NewApp and the handler tests build
// the same graph.
type Services struct {
	JWT        jwt.JWTService
	User       user.UserService
	Follow     follow.FollowService
	Tag        tag.TagService
	Ingredient ingredient.IngredientService
	Recipe     recipe.RecipeService
	Membership membership.MembershipService
	Shopping   shopping.ShoppingService
}

func NewServices(db *gorm.DB, s3 storage.AwsS3, mailer mailing.Mailer) (Services, error) {
	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	membershipRepository := membership.NewMembershipRepository(db)
	followRepository := follow.NewFollowRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	ttl := time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES")) * time.Minute
	jwtService, err := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), ttl, userRepository)
	if err != nil {
		return Services{}, fmt.Errorf("JWT_SECRET: %w", err)
	}

	return Services{
		JWT:        jwtService,
		User:       user.NewUserService(userRepository, jwtService, mailer),
		Follow:     follow.NewFollowService(followRepository, userRepository, recipeRepository),
		Tag:        tag.NewTagService(tagRepository),
		Ingredient: ingredient.NewIngredientService(ingredientRepository),
		Recipe:     recipe.NewRecipeService(recipeRepository, tagRepository, ingredientRepository, userRepository, s3),
		Membership: membership.NewMembershipService(membershipRepository, recipeRepository),
		Shopping:   shopping.NewShoppingService(shoppingRepository),
	}, nil
}

// Register builds the handlers for services and mounts every route on app.
func Register(app *fiber.App, services Services) {
	utils.InitValidator()
	validator := utils.Validate

	// Handler
	userHandler := handlers.NewUserHandler(services.User, services.Follow, validator)
	tagHandler := handlers.NewTagHandler(services.Tag)
	ingredientHandler := handlers.NewIngredientHandler(services.Ingredient)
	recipeHandler := handlers.NewRecipeHandler(services.Recipe, services.Membership, services.Shopping, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		TagHandler:        tagHandler,
		IngredientHandler: ingredientHandler,
		RecipeHandler:     recipeHandler,
		Middleware:        middleware.NewMiddleware(),
		JWTService:        services.JWT,
	}
	routesConfig.Setup()
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	services, err := NewServices(db, s3, mailer)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
	})

	// setting up logging and limiter
	err = os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	Register(app, services)
	return app, nil
}
