package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/middleware"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
)

const msgPasswordTooLong = "Password must be at most 72 bytes long"

type AuthHandler struct {
	auth AuthService
	log  logger.Logger
}

func NewAuthHandler(auth AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.Named("AuthHTTPHandler")}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

// trim strips surrounding blanks from every field except the password.
func (req *registerRequest) trim() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.Answer = strings.TrimSpace(req.Answer)
}

func (req registerRequest) missingField() string {
	switch {
	case req.Name == "":
		return "Name is Required"
	case req.Email == "":
		return "Email is Required"
	case req.Password == "":
		return "Password is Required"
	case req.Phone == "":
		return "Phone no is Required"
	case req.Address == "":
		return "Address is Required"
	case req.Answer == "":
		return "Answer is Required"
	}
	return ""
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warnw("failed to decode register body", "error", err)
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req.trim()
	if msg := req.missingField(); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	if !isValidEmail(req.Email) {
		writeMessage(w, http.StatusBadRequest, "Invalid Email")
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			writeJSON(w, http.StatusOK, envelope{"success": false, "message": "Already Register please login"})
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
			return
		}
		h.log.Errorw("failed to register user", "email", req.Email, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Errro in Registeration", err)
		return
	}

	h.log.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User Register Successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warnw("failed to decode login body", "error", err)
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusNotFound, "Invalid email or password", nil)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrEmailNotRegistered):
		writeFailure(w, http.StatusNotFound, "Email is not registerd", nil)
		return
	case errors.Is(err, service.ErrInvalidPassword):
		writeFailure(w, http.StatusBadRequest, "Invalid Password", nil)
		return
	case err != nil:
		h.log.Errorw("login failed", "email", req.Email, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error in login", err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "login successfully",
		"user":    res.User,
		"token":   res.Token,
	})
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	switch {
	case req.Email == "":
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	case req.Answer == "":
		writeMessage(w, http.StatusBadRequest, "answer is required")
		return
	case req.NewPassword == "":
		writeMessage(w, http.StatusBadRequest, "New Password is required")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email, req.Answer, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongEmailOrAnswer) {
			writeFailure(w, http.StatusNotFound, "Wrong Email Or Answer", nil)
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			writeMessage(w, http.StatusBadRequest, msgPasswordTooLong)
			return
		}
		h.log.Errorw("password reset failed", "email", req.Email, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Something went wrong", err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Password Reset Successfully"})
}

// Test is an admin-only check route.
func (h *AuthHandler) Test(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Protected Routes"))
}

// AuthCheck lets the client confirm that its token (and role, on the admin route) is accepted.
func (h *AuthHandler) AuthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"ok": true})
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.log.Warn("user id not found in token for UpdateProfile")
		writeFailure(w, http.StatusUnauthorized, "UnAuthorized Access", nil)
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Error WHile Update profile", err)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), userID, service.ProfileInput{
		Name:     strings.TrimSpace(req.Name),
		Password: req.Password,
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
	})
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User Not Found")
		return
	case errors.Is(err, service.ErrPasswordTooShort):
		writeJSON(w, http.StatusBadRequest, envelope{"error": "Passsword is required and 6 character long"})
		return
	case errors.Is(err, service.ErrPasswordTooLong):
		writeJSON(w, http.StatusBadRequest, envelope{"error": msgPasswordTooLong})
		return
	case err != nil:
		h.log.Errorw("failed to update profile", "user_id", userID, "error", err)
		writeFailure(w, http.StatusBadRequest, "Error WHile Update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":     true,
		"message":     "Profile Updated SUccessfully",
		"updatedUser": updated,
	})
}
