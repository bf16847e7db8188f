package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/aryasetya/go-auth-api/internal/application"
	"github.com/aryasetya/go-auth-api/pkg/response"
	"github.com/aryasetya/go-auth-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Only presence is checked at the binding layer; email shape and password
// length are ordered checks owned by the service.
type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber *int64 `json:"phoneNumber"`
	Age         *int   `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /create.
// Field-level checks run in the service so that the first failure wins.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrMissingFields):
			response.Error[any](c, http.StatusBadRequest, "required fields are missing", nil)
		case errors.Is(err, userapp.ErrInvalidEmail):
			response.Error[any](c, http.StatusBadRequest, "invalid email address", nil)
		case errors.Is(err, userapp.ErrPasswordTooShort):
			response.Error[any](c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		case errors.Is(err, userapp.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, "email is already registered", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user}, "sign up successful")
}

// Login handles POST /login. The token comes back ready to paste into an
// Authorization header.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrMissingFields):
			response.Error[any](c, http.StatusBadRequest, "email or password is missing", nil)
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, userapp.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": "Bearer " + token}, "sign in successful")
}

// List handles GET / (protected).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "something went wrong while fetching users", nil)
		return
	}
	if len(users) == 0 {
		response.Error[any](c, http.StatusNotFound, "no users found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "users fetched successfully")
}

// GetByID handles GET /:id (protected).
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	user, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "something went wrong while fetching the user", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user}, "user fetched successfully")
}
