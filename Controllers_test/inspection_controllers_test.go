package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/controllers"
	"github.com/yeremiapane/housekeeping-app/models"
)

func setupInspectionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	inspectionCtrl := controllers.NewInspectionController(db, nil)
	router.GET("/inspection/logs", inspectionCtrl.GetLogs)
	router.POST("/inspection/item", inspectionCtrl.UpdateItem)
	router.POST("/inspection/submit", inspectionCtrl.Submit)
	return router
}

func TestInspectionItemAndSubmit(t *testing.T) {
	db := setupTestDB(t)
	router := setupInspectionRouter(db)

	w := postJSON(t, router, "/inspection/item", map[string]interface{}{
		"roomNumber": "101",
		"item":       "bathroom",
		"status":     "fail",
		"username":   "boss",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/inspection/submit", map[string]interface{}{
		"roomNumber": "101",
		"results": map[string]string{
			"bathroom": "pass",
			"bed":      "pass",
		},
		"overallScore": 95.0,
		"username":     "boss",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = getJSON(t, router, "/inspection/logs")
	assert.Equal(t, http.StatusOK, w.Code)
	var logs []models.InspectionLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "101", logs[0].RoomNumber)
	assert.Equal(t, "pass", logs[0].Items["bathroom"])
	require.NotNil(t, logs[0].OverallScore)
	assert.Equal(t, 95.0, *logs[0].OverallScore)

	// Item update and submission each mirrored one inspection event.
	var count int64
	db.Model(&models.LiveFeedEvent{}).Where("type = ?", models.FeedTypeInspection).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestInspectionItemValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupInspectionRouter(db)

	w := postJSON(t, router, "/inspection/item", map[string]interface{}{
		"roomNumber": "999",
		"item":       "bathroom",
		"status":     "pass",
		"username":   "boss",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/inspection/item", map[string]interface{}{
		"roomNumber": "101",
		"status":     "pass",
		"username":   "boss",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInspectionLogsBadDate(t *testing.T) {
	db := setupTestDB(t)
	router := setupInspectionRouter(db)

	w := getJSON(t, router, "/inspection/logs?date=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
