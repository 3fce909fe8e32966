package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/auth"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// AuthHandler handles contractor authentication requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

func (h *AuthHandler) mintResponse(u *user.User) (*dto.AuthResponse, error) {
	pair, err := auth.MintTokens(
		u.ID, u.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.UserToDTO(u),
	}, nil
}

// Register handles account creation
// @Summary Register a new account
// @Description Create a contractor account; a 14-day trial starts immediately
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	var fullName *string
	if req.FullName != "" {
		fullName = &req.FullName
	}

	u, err := h.userService.Register(r.Context(), req.Email, req.Username, req.Password, fullName)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	resp, err := h.mintResponse(u)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to issue tokens", err))
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, resp)
}

// Login handles contractor login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	u, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	resp, err := h.mintResponse(u)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to issue tokens", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse "New tokens issued"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	claims, err := auth.ParseClaims(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	// Re-fetch so a deleted account cannot keep refreshing.
	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	resp, err := h.mintResponse(u)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to issue tokens", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, resp)
}

// Logout acknowledges logout. Tokens are stateless, so the client
// discards them; there is nothing to revoke server side.
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated user's profile
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "Profile"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.UserToDTO(u))
}

// UpdateProfile updates the authenticated user's profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.FullName != nil {
		u.FullName = req.FullName
	}
	if req.CompanyName != nil {
		u.CompanyName = *req.CompanyName
	}

	if err := h.userService.Update(r.Context(), u); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.UserToDTO(u))
}
