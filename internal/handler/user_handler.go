package handler

import (
	"net/http"

	"go-gin-comedy-tickets/internal/model"
	"go-gin-comedy-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("users", h.RegisterUser)
		router.GET("users/:id", h.GetUser)
	}
}

type registerUserRequest struct {
	Name      string     `json:"name" binding:"required,notblank,max=255"`
	Email     string     `json:"email" binding:"required,email"`
	Role      model.Role `json:"role"`
	StageName string     `json:"stage_name" binding:"max=255"`
	Bio       *string    `json:"bio"`
}

func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.service.RegisterUser(c, model.RegisterUserParams{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		StageName: req.StageName,
		Bio:       req.Bio,
	})
	if err != nil {
		handleError(c, err, "RegisterUser")
		return
	}

	handleSuccess(c, user, http.StatusCreated)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIntID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c, id)
	if err != nil {
		handleError(c, err, "GetUser")
		return
	}

	handleSuccess(c, user, http.StatusOK)
}
