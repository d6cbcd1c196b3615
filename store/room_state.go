package store

import (
	"fmt"
	"time"

	"github.com/yeremiapane/housekeeping-app/models"
)

// SetDND upserts the room's Do-Not-Disturb flag. Turning DND on stamps who
// and when; turning it off clears the stamp.
func (s *Store) SetDND(room string, flag bool, actor string, now time.Time) (*models.RoomDND, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	var dnd models.RoomDND
	if err := s.DB.Where("room_number = ?", padded).FirstOrCreate(&dnd, models.RoomDND{RoomNumber: padded}).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"dnd_status": flag,
		"dnd_set_by": actor,
	}
	if flag {
		updates["dnd_set_at"] = now
	} else {
		updates["dnd_set_at"] = nil
	}
	if err := s.DB.Model(&dnd).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&dnd, dnd.ID).Error; err != nil {
		return nil, err
	}
	return &dnd, nil
}

// SetPriority upserts the room's priority tag and the optional "allow
// cleaning after" time. Last write wins.
func (s *Store) SetPriority(room, priority string, allowCleaningTime *string) (*models.RoomPriority, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if priority == "" {
		return nil, fmt.Errorf("%w: priority is required", ErrValidation)
	}

	// Map assigns so a nil allow-cleaning time overwrites a stored one.
	var p models.RoomPriority
	err = s.DB.Where(models.RoomPriority{RoomNumber: padded}).
		Assign(map[string]interface{}{
			"priority":            priority,
			"allow_cleaning_time": allowCleaningTime,
		}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// NoteFields carries the optional pieces of a room note; only non-nil
// fields overwrite what is stored.
type NoteFields struct {
	Tags      *[]string `json:"tags"`
	AfterTime *string   `json:"afterTime"`
	Note      *string   `json:"note"`
}

// SetNote upserts the room's note with merge semantics.
func (s *Store) SetNote(room string, fields NoteFields, actor string) (*models.RoomNote, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	var note models.RoomNote
	if err := s.DB.Where("room_number = ?", padded).
		Attrs(models.RoomNote{RoomNumber: padded, LastUpdatedBy: actor}).
		FirstOrCreate(&note).Error; err != nil {
		return nil, err
	}

	if fields.Tags != nil {
		note.Tags = models.StringList(*fields.Tags)
	}
	if fields.AfterTime != nil {
		note.AfterTime = fields.AfterTime
	}
	if fields.Note != nil {
		note.Note = fields.Note
	}
	note.LastUpdatedBy = actor

	if err := s.DB.Save(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}
