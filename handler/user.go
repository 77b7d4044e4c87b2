package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"planboard/domain"
	"planboard/store"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c echo.Context) error {
	if h.Environment != "dev" && !h.EnableSignup {
		return c.JSON(http.StatusForbidden, errorBody{"Sign up has been disabled"})
	}

	var in credentials
	if err := c.Bind(&in); err != nil || in.Username == "" || in.Password == "" {
		return c.JSON(http.StatusBadRequest, errorBody{"Username and password are required"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, err)
	}

	user, err := store.CreateUser(c.Request().Context(), h.DB, uuid.NewString(), in.Username, string(hashed))
	if err != nil {
		return jsonError(c, err)
	}

	cookie, err := authorizationCookie(user.ID, h.JWTSecret)
	if err != nil {
		return jsonError(c, err)
	}
	c.SetCookie(cookie)
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil || in.Username == "" || in.Password == "" {
		return c.JSON(http.StatusBadRequest, errorBody{"Username and password are required"})
	}

	user, hash, err := store.GetUserByUsername(c.Request().Context(), h.DB, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, errorBody{"Wrong username or password"})
		}
		return jsonError(c, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return c.JSON(http.StatusBadRequest, errorBody{"Wrong username or password"})
	}

	cookie, err := authorizationCookie(user.ID, h.JWTSecret)
	if err != nil {
		return jsonError(c, err)
	}
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c echo.Context) error {
	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = ""
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(-1 * time.Second)
	c.SetCookie(cookie)
	return c.NoContent(http.StatusNoContent)
}

func authorizationCookie(userID string, secret string) (*http.Cookie, error) {
	if secret == "" {
		return nil, errors.New("missing secret")
	}
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userID"] = userID
	exp := time.Now().Add(time.Hour * 24 * 7)
	claims["expiration"] = exp.Unix()
	signedData, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = signedData
	cookie.Expires = exp
	cookie.Path = "/"
	cookie.HttpOnly = true

	return cookie, nil
}

// getUserID extracts the authenticated owner from the Authorization cookie.
// Empty string means not logged in.
func getUserID(c echo.Context, JWTSecret string) string {
	if JWTSecret == "" {
		return ""
	}

	cookie, err := c.Cookie("Authorization")
	if err != nil {
		return ""
	}
	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		// SigningMethodHMAC implements the HMAC-SHA family of signing methods.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecret), nil
	})
	if err != nil {
		return ""
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		expiration, ok := claims["expiration"].(float64)
		if !ok || time.Now().Compare(time.Unix(int64(expiration), 0)) > 0 {
			return ""
		}
		userID, ok := claims["userID"].(string)
		if ok {
			return userID
		}
	}
	return ""
}
