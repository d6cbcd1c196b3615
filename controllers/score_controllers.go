package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type ScoreController struct {
	DB *gorm.DB
}

func NewScoreController(db *gorm.DB) *ScoreController {
	return &ScoreController{DB: db}
}

// AddScore -> awards the daily point. One row per user per day; a repeat
// submission is rejected so nobody double counts.
func (sc *ScoreController) AddScore(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	username := actorFrom(c, body.Username)
	if username == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
		return
	}

	day := utils.StartOfDay(utils.HotelNow())
	var score models.ScoreLog
	res := sc.DB.Where(models.ScoreLog{Username: username, Date: day}).
		Attrs(models.ScoreLog{Score: 1}).
		FirstOrCreate(&score)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("score already recorded today"))
		return
	}

	utils.InfoLogger.Printf("Score recorded for %s", username)
	utils.RespondJSON(c, http.StatusOK, "Score recorded", score)
}

// RewardFastest -> finds today's fastest cleaner by average cleaning
// duration and marks their score row. Awarded at most once per day.
func (sc *ScoreController) RewardFastest(c *gin.Context) {
	dayStart, dayEnd := utils.DayRange(utils.HotelNow())

	var alreadyAwarded int64
	err := sc.DB.Model(&models.ScoreLog{}).
		Where("date = ? AND is_fastest = ?", dayStart, true).
		Count(&alreadyAwarded).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if alreadyAwarded > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("fastest cleaner already rewarded today"))
		return
	}

	// Average completed-cleaning duration per cleaner for the day,
	// computed in Go so it works identically on sqlite and mysql.
	var logs []models.CleaningLog
	err = sc.DB.
		Where("date >= ? AND date < ? AND start_time IS NOT NULL AND finish_time IS NOT NULL AND finished_by IS NOT NULL", dayStart, dayEnd).
		Find(&logs).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	totals := make(map[string]time.Duration)
	counts := make(map[string]int)
	for i := range logs {
		if d := logs[i].Duration(); d != nil {
			totals[*logs[i].FinishedBy] += *d
			counts[*logs[i].FinishedBy]++
		}
	}
	if len(counts) == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no completed cleanings today"))
		return
	}

	var winner string
	var best time.Duration
	for name, total := range totals {
		avg := total / time.Duration(counts[name])
		if winner == "" || avg < best {
			winner, best = name, avg
		}
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		var score models.ScoreLog
		if err := tx.Where(models.ScoreLog{Username: winner, Date: dayStart}).
			Attrs(models.ScoreLog{Score: 1}).
			FirstOrCreate(&score).Error; err != nil {
			return err
		}
		return tx.Model(&score).Updates(map[string]interface{}{
			"is_fastest": true,
			"score":      score.Score + 1,
		}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Fastest-cleaner bonus awarded to %s (avg %s)", winner, best)
	utils.RespondJSON(c, http.StatusOK, "Fastest cleaner rewarded", gin.H{
		"username":   winner,
		"avgMinutes": best.Minutes(),
	})
}

// Leaderboard -> top 3 cleaners by fastest-day count inside ?period=
// (today, this_week, this_month; default this_month).
func (sc *ScoreController) Leaderboard(c *gin.Context) {
	now := utils.HotelNow()
	var start, end time.Time

	switch c.Query("period") {
	case "today":
		start, end = utils.DayRange(now)
	case "this_week":
		start = utils.StartOfDay(now)
		for start.Weekday() != time.Sunday {
			start = start.AddDate(0, 0, -1)
		}
		end = start.AddDate(0, 0, 7)
	default:
		local := now.In(utils.HotelLocation())
		start = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, utils.HotelLocation())
		end = start.AddDate(0, 1, 0)
	}

	type entry struct {
		Username    string `json:"username"`
		TotalScore  int    `json:"totalScore"`
		FastestDays int    `json:"fastestDays"`
	}
	var board []entry
	err := sc.DB.Model(&models.ScoreLog{}).
		Select("username, SUM(score) AS total_score, SUM(CASE WHEN is_fastest THEN 1 ELSE 0 END) AS fastest_days").
		Where("date >= ? AND date < ?", start, end).
		Group("username").
		Order("fastest_days DESC, total_score DESC").
		Limit(3).
		Scan(&board).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Leaderboard retrieved", board)
}
