package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/controllers"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

func setupScoreRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	scoreCtrl := controllers.NewScoreController(db)
	router.POST("/score/add", scoreCtrl.AddScore)
	router.POST("/score/reward-fastest", scoreCtrl.RewardFastest)
	router.GET("/score/leaderboard", scoreCtrl.Leaderboard)
	return router
}

func seedCompletedCleaning(t *testing.T, db *gorm.DB, room, cleaner string, minutes int) {
	t.Helper()
	now := utils.HotelNow()
	start := now.Add(-time.Duration(minutes) * time.Minute)
	log := models.CleaningLog{
		RoomNumber: room,
		Date:       utils.StartOfDay(now),
		StartTime:  &start,
		StartedBy:  &cleaner,
		FinishTime: &now,
		FinishedBy: &cleaner,
		Status:     models.StatusFinished,
	}
	require.NoError(t, db.Create(&log).Error)
}

func TestAddScoreOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	router := setupScoreRouter(db)

	w := postJSON(t, router, "/score/add", map[string]interface{}{"username": "dara"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The stored row carries its user/day key.
	var score models.ScoreLog
	day := utils.StartOfDay(utils.HotelNow())
	require.NoError(t, db.Where("username = ? AND date = ?", "dara", day).First(&score).Error)
	assert.Equal(t, 1, score.Score)

	w = postJSON(t, router, "/score/add", map[string]interface{}{"username": "dara"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// A different user still gets their point.
	w = postJSON(t, router, "/score/add", map[string]interface{}{"username": "sokha"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRewardFastestPicksLowestAverage(t *testing.T) {
	db := setupTestDB(t)
	router := setupScoreRouter(db)

	seedCompletedCleaning(t, db, "101", "dara", 40)
	seedCompletedCleaning(t, db, "102", "sokha", 20)
	seedCompletedCleaning(t, db, "103", "sokha", 30)

	w := postJSON(t, router, "/score/reward-fastest", map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "sokha", data["username"])

	// Only once per day.
	w = postJSON(t, router, "/score/reward-fastest", map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRewardFastestWithNoCleanings(t *testing.T) {
	db := setupTestDB(t)
	router := setupScoreRouter(db)

	w := postJSON(t, router, "/score/reward-fastest", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaderboardTopThree(t *testing.T) {
	db := setupTestDB(t)
	router := setupScoreRouter(db)

	day := utils.StartOfDay(utils.HotelNow())
	for i, name := range []string{"a", "b", "c", "d"} {
		score := models.ScoreLog{Username: name, Date: day, Score: 1 + i, IsFastest: i%2 == 0}
		require.NoError(t, db.Create(&score).Error)
	}

	w := getJSON(t, router, "/score/leaderboard?period=today")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	board := resp["data"].([]interface{})
	assert.Len(t, board, 3)

	top := board[0].(map[string]interface{})
	assert.Equal(t, float64(1), top["fastestDays"])
}
