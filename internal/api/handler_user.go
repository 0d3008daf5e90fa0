package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiobedeschi/iiot-userservice/pkg/middleware"
	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"
)

// UserCoordinator defines the mutation operations the API exposes.
type UserCoordinator interface {
	FindAllUsers(area string) ([]models.User, error)
	FindUser(id string) (*models.User, error)
	CreateUser(id string, delta *int64, area *string) (*models.User, error)
	UpdateUser(id string, delta *int64, area *string) (*models.User, error)
	DeleteUser(id string) (*models.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	Coordinator UserCoordinator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(coordinator UserCoordinator) *UserHandler {
	return &UserHandler{Coordinator: coordinator}
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns all users, optionally filtered by area. An empty collection is still a 200.
// @Tags         users
// @Produce      json
// @Param        area  query     string  false  "Area filter"
// @Success      200   {array}   models.User
// @Failure      500   {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Coordinator.FindAllUsers(c.Query("area"))
	if err != nil {
		log.Printf("[API] Error listing users: %v correlation_id=%s", err, middleware.GetCorrelationID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get a user by ID
// @Description  Returns a single user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.Coordinator.FindUser(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create a new user
// @Description  Creates a user with the caller-assigned ID and publishes a create event on the user's area topic
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true   "User ID"
// @Param        request  body      models.CreateUserRequest  false  "Create user request"
// @Success      201      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /users/{id} [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] CreateUser id=%s correlation_id=%s", userID, correlationID)

	// An absent body is a valid create with defaults.
	var req models.CreateUserRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	user, err := h.Coordinator.CreateUser(userID, req.Delta, req.Area)
	if err != nil {
		log.Printf("[API] Error creating user: %v correlation_id=%s", err, correlationID)
		h.renderError(c, err)
		return
	}

	log.Printf("[API] User created: id=%s area=%q correlation_id=%s", user.ID, user.Area, correlationID)
	c.JSON(http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary      Update an existing user
// @Description  Adjusts the user's delta and/or reassigns its area. An area change is announced as a delete on the old topic followed by a create on the new one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      models.UpdateUserRequest  true  "Update user request"
// @Success      200      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] UpdateUser id=%s correlation_id=%s", userID, correlationID)

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Coordinator.UpdateUser(userID, req.Delta, req.Area)
	if err != nil {
		log.Printf("[API] Error updating user: %v correlation_id=%s", err, correlationID)
		h.renderError(c, err)
		return
	}

	log.Printf("[API] User updated: id=%s area=%q correlation_id=%s", user.ID, user.Area, correlationID)
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user and publishes a delete event on the area the user occupied
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] DeleteUser id=%s correlation_id=%s", userID, correlationID)

	user, err := h.Coordinator.DeleteUser(userID)
	if err != nil {
		log.Printf("[API] Error deleting user: %v correlation_id=%s", err, correlationID)
		h.renderError(c, err)
		return
	}

	log.Printf("[API] User deleted: id=%s correlation_id=%s", user.ID, correlationID)
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
