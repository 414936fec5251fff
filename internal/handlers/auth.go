package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"invoiceapp/internal/auth"
	"invoiceapp/internal/httpx"
	"invoiceapp/internal/models"
	"invoiceapp/internal/validation"
)

// AuthHandler covers the identity boundary: registration, login and the
// current-user profile. Everything downstream of it only sees the verified
// user id in the request context.
type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("GET /api/auth/profile", auth.Middleware(auth.RequireAuth(http.HandlerFunc(h.profile))))
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	data, err := decodeJSON(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validation.UserData(data); msg != "" {
		httpx.JSONError(w, http.StatusBadRequest, msg)
		return
	}
	username := strings.TrimSpace(data["username"].(string))
	email := strings.TrimSpace(data["email"].(string))

	var count int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if err := h.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Email already exists")
		return
	}

	user := models.User{
		Username:    username,
		Email:       email,
		CompanyName: stringValue(data, "company_name"),
	}
	if err := user.SetPassword(data["password"].(string)); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":      "User created successfully",
		"access_token": token,
		"user":         user,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	data, err := decodeJSON(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validation.Required(data, "username", "password"); msg != "" {
		httpx.JSONError(w, http.StatusBadRequest, msg)
		return
	}
	username, _ := data["username"].(string)
	password, _ := data["password"].(string)

	var user models.User
	err = h.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.CheckPassword(password)) {
		httpx.JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":      "Login successful",
		"access_token": token,
		"user":         user,
	})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	var user models.User
	if err := h.DB.First(&user, uid).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "User not found")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": user})
}

func stringValue(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
