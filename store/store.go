package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/rooms"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// Store owns every room-state mutation. Lifecycle transitions are applied
// as single conditional UPDATEs so the guard check and the write are one
// indivisible operation against the database; RowsAffected == 0 means the
// guard rejected the transition (or a concurrent caller won the race).
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// validRoom normalizes a room identifier and rejects anything outside the
// registry before the store is touched.
func validRoom(id string) (string, error) {
	padded := rooms.Pad(id)
	if !rooms.IsValid(padded) {
		return "", fmt.Errorf("%w: unknown room %q", ErrValidation, id)
	}
	return padded, nil
}

// GetOrCreateCleaningLog returns the room's record for the given day,
// creating a default "available" one if absent.
func (s *Store) GetOrCreateCleaningLog(room string, day time.Time) (*models.CleaningLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	dayKey := utils.StartOfDay(day)

	// Struct conditions, not raw SQL: gorm copies them into the created
	// row, so a fresh record is keyed by room and day.
	var log models.CleaningLog
	err = s.DB.Where(models.CleaningLog{RoomNumber: padded, Date: dayKey}).
		Attrs(models.CleaningLog{Status: models.StatusAvailable}).
		FirstOrCreate(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// StartCleaning opens today's record for the room. A record that is mid
// clean (started, not finished) rejects the start; a finished record is
// reopened with all later timestamps cleared.
func (s *Store) StartCleaning(room, actor string, now time.Time) (*models.CleaningLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	log, err := s.GetOrCreateCleaningLog(padded, now)
	if err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.CleaningLog{}).
		Where("id = ? AND (start_time IS NULL OR finish_time IS NOT NULL)", log.ID).
		Updates(map[string]interface{}{
			"start_time":   now,
			"started_by":   actor,
			"finish_time":  nil,
			"finished_by":  nil,
			"checked_time": nil,
			"checked_by":   nil,
			"status":       models.StatusInProgress,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room %s is already being cleaned", ErrConflict, padded)
	}

	return s.reload(log.ID)
}

// FinishCleaning closes the room's open record. NotFound when no unfinished
// record exists; under a race exactly one caller wins the conditional
// update.
func (s *Store) FinishCleaning(room, actor string, finish time.Time) (*models.CleaningLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	var log models.CleaningLog
	err = s.DB.Where("room_number = ? AND finish_time IS NULL", padded).
		Order("date DESC").
		First(&log).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: no open cleaning record for room %s", ErrNotFound, padded)
	}
	if err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.CleaningLog{}).
		Where("id = ? AND finish_time IS NULL", log.ID).
		Updates(map[string]interface{}{
			"finish_time": finish,
			"finished_by": actor,
			"status":      models.StatusFinished,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room %s already finished", ErrNotFound, padded)
	}

	return s.reload(log.ID)
}

// CheckRoom marks a finished record as checked. Conflict when the record is
// not finished yet or was already checked.
func (s *Store) CheckRoom(room, actor string, now time.Time) (*models.CleaningLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	var log models.CleaningLog
	err = s.DB.Where("room_number = ? AND finish_time IS NOT NULL AND checked_time IS NULL", padded).
		Order("date DESC").
		First(&log).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: room %s not finished or already checked", ErrConflict, padded)
	}
	if err != nil {
		return nil, err
	}

	res := s.DB.Model(&models.CleaningLog{}).
		Where("id = ? AND finish_time IS NOT NULL AND checked_time IS NULL", log.ID).
		Updates(map[string]interface{}{
			"checked_time": now,
			"checked_by":   actor,
			"status":       models.StatusChecked,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: room %s already checked", ErrConflict, padded)
	}

	return s.reload(log.ID)
}

// ResetCleaning clears the room's newest record back to "available".
// The room's DND flag is deliberately left alone; only the bulk ClearAll
// resets DND.
func (s *Store) ResetCleaning(room string) (*models.CleaningLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}

	var log models.CleaningLog
	err = s.DB.Where("room_number = ?", padded).
		Order("date DESC").
		First(&log).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: room %s has no cleaning record", ErrNotFound, padded)
	}
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.CleaningLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]interface{}{
			"start_time":   nil,
			"started_by":   nil,
			"finish_time":  nil,
			"finished_by":  nil,
			"checked_time": nil,
			"checked_by":   nil,
			"status":       models.StatusAvailable,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.reload(log.ID)
}

func (s *Store) reload(id uint) (*models.CleaningLog, error) {
	var log models.CleaningLog
	if err := s.DB.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}
