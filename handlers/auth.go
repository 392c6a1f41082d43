package handlers

import (
	"net/http"

	"safarexpress/models"
	"safarexpress/services/auth"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input models.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, session)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.Service.Login(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, session)
}

func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var input models.RefreshInput
	if !bindJSON(c, &input) {
		return
	}
	session, err := h.Service.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, session)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var input models.RefreshInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.Service.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}
