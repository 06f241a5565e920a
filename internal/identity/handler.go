package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes identity endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type userResponse struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
}

// Register handles account opening.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Register(c.UserContext(), RegisterInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateNationalID):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toUserResponse(user))
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfile edits the authenticated user's profile.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.UpdateProfile(c.UserContext(), userID, UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrDuplicateEmail):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrUserNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	user, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":     user.ID,
		"name":        user.Name,
		"national_id": user.NationalID,
		"email":       user.Email,
		"created_at":  user.CreatedAt,
	})
}

func toUserResponse(user User) userResponse {
	return userResponse{
		UserID:     user.ID,
		Name:       user.Name,
		NationalID: user.NationalID,
		Email:      user.Email,
	}
}
