package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/cafepos/app/services"
	"github.com/shashiranjanraj/cafepos/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /login. Credentials that are missing or not strings
// are a failed login, not a malformed request.
func (a *AuthController) Login(c *ctx.Context) error {
	var body struct {
		Username json.RawMessage `json:"username"`
		Password json.RawMessage `json:"password"`
	}
	if err := c.BindJSON(&body); err != nil {
		return err
	}

	username, uok := credential(body.Username)
	password, pok := credential(body.Password)
	if !uok || !pok {
		return c.JSON(http.StatusUnauthorized, map[string]bool{"success": false})
	}

	token, ok, err := a.service.Login(c.Context(), username, password)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]bool{"success": false})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

func credential(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}
