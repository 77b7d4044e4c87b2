package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"

	"planboard/handler"
	"planboard/store"
)

const DEV_ENV = "dev"
const PRO_ENV = "pro"

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = PRO_ENV
	}

	fmt.Println("Running database schema migrations...")
	db, err := setupDB()
	if err != nil {
		panic(fmt.Sprintf("error setting up database: %v", err))
	}

	JWTSecret, err := fetchSecret(env)
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(JWTSecret),
		TokenLookup: "cookie:Authorization",
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			// The share endpoint is the identity-free path: the bearer token
			// in the request is its whole authorization story.
			case "/share", "/signup", "/login", "/logout", "/healthz":
				return true
			}
			return false
		},
	}))

	h := handler.New(db, JWTSecret, os.Getenv("ENABLE_SIGNUP") == "true", env)

	// Anonymous share-link access
	e.Any("/share", h.Share)

	// Owner accounts
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Owner API
	e.POST("/api/organizations", h.NewOrganization)
	e.GET("/api/organizations", h.GetOrganizations)
	e.DELETE("/api/organizations/:id", h.DeleteOrganization)
	e.GET("/api/organizations/:id/posts", h.GetPosts)
	e.POST("/api/organizations/:id/posts", h.NewPost)
	e.PUT("/api/organizations/:id/posts/:postID", h.EditPost)
	e.DELETE("/api/organizations/:id/posts/:postID", h.DeletePost)
	e.POST("/api/organizations/:id/shares", h.NewShareGrant)
	e.GET("/api/organizations/:id/shares", h.GetShareGrants)
	e.DELETE("/api/shares/:id", h.RevokeShareGrant)

	e.HTTPErrorHandler = customHTTPErrorHandler

	addr := os.Getenv("ADDRESS_LISTEN")
	if env == DEV_ENV && addr == "" {
		addr = ":8080"
	}

	if addr != "" {
		e.Logger.Fatal(e.Start(addr))
	} else {
		// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
		e.AutoTLSManager.Cache = autocert.DirCache("/var/www/.cache")
		if onlyHost := os.Getenv("WHITELIST_HOST"); onlyHost != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(onlyHost)
		}
		e.Pre(middleware.HTTPSRedirect())
		e.Logger.Fatal(e.StartAutoTLS(":443"))
	}
}

func fetchSecret(env string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == DEV_ENV {
		secret = "unsecure"
	}
	if secret == "" {
		return "", errors.New("no secret defined")
	}
	return secret, nil
}

func setupDB() (*sql.DB, error) {
	dbDriver := os.Getenv("DB_DRIVER")
	dataSourceName := os.Getenv("DB_URL")

	if dbDriver == "" {
		dbDriver = "sqlite"
	}
	if dbDriver == "sqlite" && dataSourceName == "" {
		dataSourceName = "./planboard.db?_pragma=foreign_keys(1)"
	}

	return store.Open(dbDriver, dataSourceName, "file://db/migrations")
}

func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	if !c.Response().Committed {
		c.JSON(code, map[string]string{"error": message})
	}
}
