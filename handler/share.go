package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type shareRequest struct {
	Token   string          `json:"token"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Share is the anonymous endpoint behind share links. Token and action arrive
// as query parameters or in the JSON body; query wins when both are present.
// The body may either nest the payload under "payload" or be the payload
// itself alongside token/action.
func (h *Handler) Share(c echo.Context) error {
	token := c.QueryParam("token")
	action := c.QueryParam("action")

	var req shareRequest
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return jsonError(c, err)
	}
	if len(raw) > 0 {
		// A non-JSON body is tolerated; query parameters may carry everything.
		_ = json.Unmarshal(raw, &req)
	}
	if token == "" {
		token = req.Token
	}
	if action == "" {
		action = req.Action
	}
	payload := req.Payload
	if len(payload) == 0 {
		payload = raw
	}

	ctx := c.Request().Context()
	grant, err := h.Validator.Resolve(ctx, token)
	if err != nil {
		return jsonError(c, err)
	}

	result, err := h.Dispatcher.Dispatch(ctx, grant, action, payload)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
