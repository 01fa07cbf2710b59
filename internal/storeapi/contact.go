package storeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/internal/webserver"
	"github.com/oceancatch/fishhub/pkg/common"
)

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

func registerContactRoutes() {
	webserver.ApiPOST("/storefront/contact", submitContact)
}

// submitContact stores a contact-page message and forwards it to the
// shop mailbox on a best-effort basis.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", err.Error())
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)

	fieldErrors := make(map[string]string)
	if payload.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if payload.Email == "" || !common.IsEmailValid(payload.Email) {
		fieldErrors["email"] = "Invalid email address"
	}
	if payload.Message == "" {
		fieldErrors["message"] = "Message is required"
	} else if len(payload.Message) > 2000 {
		fieldErrors["message"] = "Message must be at most 2000 characters"
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": "Please correct the highlighted fields",
			"errors":  fieldErrors,
		})
	}

	msg := domain.SysContactMsg{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Message:   payload.Message,
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save message", err.Error())
	}

	if err := GetApp(c).Mailer().DeliverContact(payload.Name, payload.Email, payload.Message); err != nil {
		// stored already; delivery failure is an operator concern only
		zap.L().Warn("contact message email delivery failed", zap.Error(err))
	}

	return ok(c, map[string]interface{}{"id": msg.ID})
}
