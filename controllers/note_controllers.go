package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/feed"
	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/store"
	"github.com/yeremiapane/housekeeping-app/utils"
)

type NoteController struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db, Store: store.New(db)}
}

// GetNotes -> every room note.
func (nc *NoteController) GetNotes(c *gin.Context) {
	var notes []models.RoomNote
	if err := nc.DB.Find(&notes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// SetNote -> upserts a room note; only the supplied fields overwrite.
func (nc *NoteController) SetNote(c *gin.Context) {
	var body struct {
		RoomNumber string           `json:"roomNumber" binding:"required"`
		Notes      store.NoteFields `json:"notes"`
		Username   string           `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := actorFrom(c, body.Username)

	note, err := nc.Store.SetNote(body.RoomNumber, body.Notes, actor)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	feed.EmitNoteUpdate(note, models.JSONMap{"actor": actor})

	utils.InfoLogger.Printf("Note for room %s updated by %s", note.RoomNumber, actor)
	utils.RespondJSON(c, http.StatusOK, "Room note updated", note)
}
