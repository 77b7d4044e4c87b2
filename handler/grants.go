package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type issueGrantBody struct {
	AccessLevel string `json:"access_level"`
	// TTLDays controls expiry: 0 means the 30-day default, negative means the
	// grant never expires.
	TTLDays int `json:"ttl_days"`
}

// NewShareGrant mints a share token for an organization. The response is the
// one place the token value is handed out.
func (h *Handler) NewShareGrant(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	var in issueGrantBody
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{"Invalid payload"})
	}

	ttl := time.Duration(in.TTLDays) * 24 * time.Hour
	grant, err := h.Grants.Issue(c.Request().Context(), userID, c.Param("id"), in.AccessLevel, ttl)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, grant)
}

// GetShareGrants lists the organization's unrevoked grants, newest first.
// The issuer may see token values again; no other role ever can.
func (h *Handler) GetShareGrants(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	grants, err := h.Grants.ListActive(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, grants)
}

func (h *Handler) RevokeShareGrant(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	if err := h.Grants.Revoke(c.Request().Context(), userID, c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
