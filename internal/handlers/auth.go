package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"biletrack/internal/models"
	"biletrack/internal/store"
)

type AuthHandler struct {
	store     store.Storage
	jwtSecret []byte
}

func NewAuthHandler(s store.Storage, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{store: s, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	SurgeryDate *string `json:"surgeryDate"` // YYYY-MM-DD
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	errs := fieldErrors{}
	if req.Username == "" {
		errs["username"] = "username is required"
	}
	if req.Password == "" {
		errs["password"] = "password is required"
	}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.SurgeryDate != nil && !validDate(*req.SurgeryDate) {
		errs["surgeryDate"] = "surgeryDate must be YYYY-MM-DD"
	}
	if len(errs) > 0 {
		writeInvalid(w, "Invalid registration data", errs)
		return
	}
	if _, err := h.store.GetUserByUsername(r.Context(), req.Username); err == nil {
		writeMessage(w, http.StatusBadRequest, "username already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not hash password")
		return
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Name:         req.Name,
		SurgeryDate:  req.SurgeryDate,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		writeMessage(w, http.StatusBadRequest, "could not create user")
		return
	}

	token, err := h.issueJWT(user.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid body")
		return
	}
	c.Username = strings.TrimSpace(strings.ToLower(c.Username))
	if c.Username == "" || c.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), c.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.issueJWT(user.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (h *AuthHandler) issueJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
