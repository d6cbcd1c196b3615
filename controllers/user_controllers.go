package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register -> creates a staff account. Role defaults to cleaner.
func (uc *UserController) Register(c *gin.Context) {
	var body struct {
		Username string  `json:"username" binding:"required"`
		Password string  `json:"password" binding:"required,min=6"`
		Role     string  `json:"role"`
		Phone    *string `json:"phone"`
		Position *string `json:"position"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := uc.DB.Where("username = ?", body.Username).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("username already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := body.Role
	if role == "" {
		role = "cleaner"
	}

	user := models.User{
		Username: body.Username,
		Password: string(hashed),
		Role:     role,
		Phone:    body.Phone,
		Position: body.Position,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %s registered (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", user)
}

// Login -> verifies credentials and issues a JWT.
func (uc *UserController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid username or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %s logged in", user.Username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout -> blacklists the presented token for the rest of its lifetime.
func (uc *UserController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing bearer token"))
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	utils.BlacklistToken(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile -> the authenticated user's record.
func (uc *UserController) GetProfile(c *gin.Context) {
	username := actorFrom(c, "")
	if username == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfile -> partial update of the authenticated user's own record.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	username := actorFrom(c, "")
	if username == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
		return
	}

	var body struct {
		Phone        *string `json:"phone"`
		Position     *string `json:"position"`
		ProfileImage *string `json:"profileImage"`
		Password     *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	updates := map[string]interface{}{}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}
	if body.Position != nil {
		updates["position"] = *body.Position
	}
	if body.ProfileImage != nil {
		updates["profile_image"] = *body.ProfileImage
	}
	if body.Password != nil {
		if len(*body.Password) < 6 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("password must be at least 6 characters"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		utils.RespondJSON(c, http.StatusOK, "Nothing to update", user)
		return
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Profile updated for %s", username)
	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}

// ListUsers -> all staff accounts (admin only, enforced by middleware).
func (uc *UserController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("username ASC").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Users retrieved", users)
}
