package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/controllers"
	"github.com/yeremiapane/housekeeping-app/middlewares"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	return router
}

func TestRegisterLoginProfile(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"username": "dara",
		"password": "secret123",
		"role":     "cleaner",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username rejected.
	w = postJSON(t, router, "/register", map[string]interface{}{
		"username": "dara",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"username": "dara",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	data := loginResp["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// The password hash never leaves the API.
	userData := data["user"].(map[string]interface{})
	_, leaked := userData["Password"]
	assert.False(t, leaked)
	_, leaked = userData["password"]
	assert.False(t, leaked)

	req, _ := http.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout revokes the token for subsequent calls.
	req, _ = http.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := postJSON(t, router, "/register", map[string]interface{}{
		"username": "dara",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"username": "dara",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, router, "/login", map[string]interface{}{
		"username": "nobody",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	req, _ := http.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	body, _ := json.Marshal(map[string]interface{}{
		"username": "dara",
		"password": "abc",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
