package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

func TestSetDND(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	dnd, err := s.SetDND("101", true, "dara", now)
	require.NoError(t, err)
	assert.True(t, dnd.DNDStatus)
	assert.Equal(t, "dara", *dnd.DNDSetBy)
	require.NotNil(t, dnd.DNDSetAt)

	// Turning it off clears the timestamp but remembers who did it.
	dnd, err = s.SetDND("101", false, "sokha", now)
	require.NoError(t, err)
	assert.False(t, dnd.DNDStatus)
	assert.Equal(t, "sokha", *dnd.DNDSetBy)
	assert.Nil(t, dnd.DNDSetAt)
}

func TestSetDNDUpsertsSingleRow(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	_, err := s.SetDND("102", true, "dara", now)
	require.NoError(t, err)
	_, err = s.SetDND("102", false, "dara", now)
	require.NoError(t, err)
	_, err = s.SetDND("102", true, "dara", now)
	require.NoError(t, err)

	var count int64
	s.DB.Model(&models.RoomDND{}).Where("room_number = ?", "102").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetDNDValidation(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	_, err := s.SetDND("999", true, "dara", now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SetDND("101", true, "", now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetPriorityLastWriteWins(t *testing.T) {
	s := setupStore(t)

	after := "14:00"
	p, err := s.SetPriority("103", "urgent", &after)
	require.NoError(t, err)
	assert.Equal(t, "urgent", p.Priority)
	assert.Equal(t, "14:00", *p.AllowCleaningTime)

	p, err = s.SetPriority("103", models.DefaultPriority, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPriority, p.Priority)
	assert.Nil(t, p.AllowCleaningTime)

	var count int64
	s.DB.Model(&models.RoomPriority{}).Where("room_number = ?", "103").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetPriorityKeysFreshRow(t *testing.T) {
	s := setupStore(t)

	_, err := s.SetPriority("110", "urgent", nil)
	require.NoError(t, err)

	// A first write must create a row carrying its room number.
	var p models.RoomPriority
	require.NoError(t, s.DB.Where("room_number = ?", "110").First(&p).Error)
	assert.Equal(t, "urgent", p.Priority)
}

func TestSetPriorityValidation(t *testing.T) {
	s := setupStore(t)

	_, err := s.SetPriority("103", "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SetPriority("206", "urgent", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetNoteMergesFields(t *testing.T) {
	s := setupStore(t)

	text := "guest asked for extra towels"
	note, err := s.SetNote("104", NoteFields{Note: &text}, "dara")
	require.NoError(t, err)
	assert.Equal(t, text, *note.Note)
	assert.Equal(t, "dara", note.LastUpdatedBy)

	// Updating only the tags leaves the note text untouched.
	tags := []string{"towels", "vip"}
	note, err = s.SetNote("104", NoteFields{Tags: &tags}, "sokha")
	require.NoError(t, err)
	assert.Equal(t, text, *note.Note)
	assert.Equal(t, models.StringList{"towels", "vip"}, note.Tags)
	assert.Equal(t, "sokha", note.LastUpdatedBy)

	// An explicit empty string overwrites; a nil field does not.
	empty := ""
	after := "15:30"
	note, err = s.SetNote("104", NoteFields{Note: &empty, AfterTime: &after}, "dara")
	require.NoError(t, err)
	assert.Equal(t, "", *note.Note)
	assert.Equal(t, "15:30", *note.AfterTime)
	assert.Equal(t, models.StringList{"towels", "vip"}, note.Tags)
}

func TestSetNoteValidation(t *testing.T) {
	s := setupStore(t)

	_, err := s.SetNote("104", NoteFields{}, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SetNote("xyz", NoteFields{}, "dara")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInspectionItemUpsert(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	log, err := s.SetInspectionItem("105", now, "bathroom", "pass", "boss")
	require.NoError(t, err)
	assert.Equal(t, "pass", log.Items["bathroom"])
	assert.Equal(t, "boss", log.UpdatedBy)

	// Second item lands on the same record for the same day.
	log, err = s.SetInspectionItem("105", now, "minibar", "fail", "boss")
	require.NoError(t, err)
	assert.Equal(t, "pass", log.Items["bathroom"])
	assert.Equal(t, "fail", log.Items["minibar"])

	var count int64
	s.DB.Model(&models.InspectionLog{}).Where("room_number = ?", "105").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestInspectionRecordKeyedByRoomAndDay(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	_, err := s.SetInspectionItem("108", now, "bathroom", "pass", "boss")
	require.NoError(t, err)

	var log models.InspectionLog
	err = s.DB.Where("room_number = ? AND date = ?", "108", utils.StartOfDay(now)).First(&log).Error
	require.NoError(t, err)
	assert.Equal(t, "pass", log.Items["bathroom"])
}

func TestSubmitInspectionReplacesChecklist(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	_, err := s.SetInspectionItem("106", now, "bathroom", "fail", "boss")
	require.NoError(t, err)

	score := 92.5
	log, err := s.SubmitInspection("106", now, map[string]string{
		"bathroom": "pass",
		"bed":      "pass",
	}, &score, "boss")
	require.NoError(t, err)

	assert.Equal(t, models.StringMap{"bathroom": "pass", "bed": "pass"}, log.Items)
	require.NotNil(t, log.OverallScore)
	assert.Equal(t, 92.5, *log.OverallScore)
}

func TestInspectionValidation(t *testing.T) {
	s := setupStore(t)
	now := utils.HotelNow()

	_, err := s.SetInspectionItem("106", now, "", "pass", "boss")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SetInspectionItem("106", now, "bathroom", "pass", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SubmitInspection("999", now, nil, nil, "boss")
	assert.ErrorIs(t, err, ErrValidation)
}
