package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"planboard/domain"
	"planboard/store"
)

// Owner-side post CRUD. The anonymous path goes through the share dispatcher
// instead; these handlers require a logged-in owner of the organization.

func (h *Handler) requireOrgOwner(c echo.Context, orgID string) (string, error) {
	userID := getUserID(c, h.JWTSecret)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Login required")
	}
	owner, err := store.IsOrganizationOwner(c.Request().Context(), h.DB, orgID, userID)
	if err != nil {
		return "", err
	}
	if !owner {
		return "", domain.ErrNotOwner
	}
	return userID, nil
}

func (h *Handler) GetPosts(c echo.Context) error {
	orgID := c.Param("id")
	if _, err := h.requireOrgOwner(c, orgID); err != nil {
		return jsonError(c, err)
	}

	posts, err := store.ListPostsByOrganization(c.Request().Context(), h.DB, orgID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

type postBody struct {
	Date     string `json:"date"`
	Content  string `json:"content"`
	MediaURL string `json:"media_url"`
	Status   string `json:"status"`
}

func (h *Handler) NewPost(c echo.Context) error {
	orgID := c.Param("id")
	if _, err := h.requireOrgOwner(c, orgID); err != nil {
		return jsonError(c, err)
	}

	var in postBody
	if err := c.Bind(&in); err != nil || in.Date == "" || in.Content == "" {
		return c.JSON(http.StatusBadRequest, errorBody{"Date and content are required"})
	}
	if in.Status == "" {
		in.Status = domain.PostStatusProcess
	}
	if !domain.ValidPostStatus(in.Status) {
		return jsonError(c, fmt.Errorf("%w: status %q", domain.ErrInvalidPayload, in.Status))
	}

	post, err := store.CreatePost(c.Request().Context(), h.DB, domain.Post{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Content:        in.Content,
		MediaURL:       in.MediaURL,
		Status:         in.Status,
		Date:           in.Date,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *Handler) EditPost(c echo.Context) error {
	orgID := c.Param("id")
	if _, err := h.requireOrgOwner(c, orgID); err != nil {
		return jsonError(c, err)
	}

	var in struct {
		Content  *string `json:"content"`
		MediaURL *string `json:"media_url"`
		Status   *string `json:"status"`
		Date     *string `json:"date"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{"Invalid payload"})
	}
	if in.Status != nil && !domain.ValidPostStatus(*in.Status) {
		return jsonError(c, fmt.Errorf("%w: status %q", domain.ErrInvalidPayload, *in.Status))
	}

	post, err := store.UpdatePost(c.Request().Context(), h.DB, orgID, c.Param("postID"), store.PostUpdate{
		Content:  in.Content,
		MediaURL: in.MediaURL,
		Status:   in.Status,
		Date:     in.Date,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c echo.Context) error {
	orgID := c.Param("id")
	if _, err := h.requireOrgOwner(c, orgID); err != nil {
		return jsonError(c, err)
	}

	if err := store.DeletePost(c.Request().Context(), h.DB, orgID, c.Param("postID")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
