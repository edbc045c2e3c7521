package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookshelf/internal/auth"
	"bookshelf/internal/config"
	"bookshelf/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/registration", userHandler.Register)
	api.POST("/token", authHandler.Login)
	api.POST("/token/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Book catalog is public, matching the original service.
	api.GET("/books", bookHandler.ListBooks)
	api.POST("/books", bookHandler.CreateBook)
	api.GET("/books/:id", bookHandler.GetBook)
	api.PUT("/books/:id", bookHandler.UpdateBook)
	api.PATCH("/books/:id", bookHandler.PatchBook)
	api.DELETE("/books/:id", bookHandler.DeleteBook)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/profile", userHandler.GetProfile)
	secured.PATCH("/profile", userHandler.UpdateProfile)
	secured.PATCH("/change-password", userHandler.ChangePassword)
	secured.PATCH("/email/confirm", userHandler.ConfirmEmail)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
