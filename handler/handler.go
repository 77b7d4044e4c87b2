package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"planboard/domain"
	"planboard/share"
)

type Handler struct {
	DB           *sql.DB
	JWTSecret    string
	EnableSignup bool
	Environment  string

	Validator  *share.Validator
	Dispatcher *share.Dispatcher
	Grants     *share.Manager
}

func New(db *sql.DB, jwtSecret string, enableSignup bool, environment string) *Handler {
	return &Handler{
		DB:           db,
		JWTSecret:    jwtSecret,
		EnableSignup: enableSignup,
		Environment:  environment,
		Validator:    &share.Validator{DB: db},
		Dispatcher:   &share.Dispatcher{DB: db},
		Grants:       &share.Manager{DB: db},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// jsonError maps sentinel errors to status codes. Expired, revoked, and
// fabricated tokens share one 401 body so callers cannot probe which tokens
// exist; store failures get a generic 500 with detail kept in the server log.
func jsonError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return c.JSON(http.StatusBadRequest, errorBody{"Token is required"})
	case errors.Is(err, domain.ErrInvalidToken):
		if errors.Is(err, domain.ErrTokenExpired) {
			c.Logger().Infof("rejected expired share token")
		}
		return c.JSON(http.StatusUnauthorized, errorBody{"Invalid or expired token"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody{"Edit access required"})
	case errors.Is(err, domain.ErrUnknownAction):
		return c.JSON(http.StatusBadRequest, errorBody{"Invalid action"})
	case errors.Is(err, domain.ErrInvalidPayload):
		return c.JSON(http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{"Not found"})
	case errors.Is(err, domain.ErrNotOwner):
		return c.JSON(http.StatusForbidden, errorBody{"Organization ownership required"})
	case errors.Is(err, domain.ErrDuplicateUsername):
		return c.JSON(http.StatusConflict, errorBody{"Username already taken"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorBody{"Internal server error"})
	}
}
