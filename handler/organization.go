package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"planboard/store"
)

func (h *Handler) NewOrganization(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	var in struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusBadRequest, errorBody{"Name is required"})
	}

	org, err := store.CreateOrganization(c.Request().Context(), h.DB, uuid.NewString(), in.Name, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, org)
}

func (h *Handler) GetOrganizations(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	orgs, err := store.ListOrganizationsByOwner(c.Request().Context(), h.DB, userID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, orgs)
}

// DeleteOrganization removes an organization; only its creator may do so.
func (h *Handler) DeleteOrganization(c echo.Context) error {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, errorBody{"Login required"})
	}

	if err := store.DeleteOrganization(c.Request().Context(), h.DB, c.Param("id"), userID); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
