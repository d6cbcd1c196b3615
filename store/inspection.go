package store

import (
	"fmt"
	"time"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// SetInspectionItem upserts a single checklist entry on the room's
// inspection record for the given day.
func (s *Store) SetInspectionItem(room string, day time.Time, item, status, actor string) (*models.InspectionLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if item == "" {
		return nil, fmt.Errorf("%w: item is required", ErrValidation)
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	log, err := s.getOrCreateInspection(padded, day)
	if err != nil {
		return nil, err
	}

	if log.Items == nil {
		log.Items = models.StringMap{}
	}
	log.Items[item] = status
	log.UpdatedBy = actor
	log.UpdatedAt = time.Now()

	if err := s.DB.Save(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

// SubmitInspection replaces the room's checklist wholesale and records the
// overall score.
func (s *Store) SubmitInspection(room string, day time.Time, results map[string]string, overallScore *float64, actor string) (*models.InspectionLog, error) {
	padded, err := validRoom(room)
	if err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	log, err := s.getOrCreateInspection(padded, day)
	if err != nil {
		return nil, err
	}

	log.Items = models.StringMap(results)
	log.OverallScore = overallScore
	log.UpdatedBy = actor
	log.UpdatedAt = time.Now()

	if err := s.DB.Save(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (s *Store) getOrCreateInspection(room string, day time.Time) (*models.InspectionLog, error) {
	dayKey := utils.StartOfDay(day)
	var log models.InspectionLog
	err := s.DB.Where(models.InspectionLog{RoomNumber: room, Date: dayKey}).
		Attrs(models.InspectionLog{Items: models.StringMap{}, UpdatedAt: time.Now()}).
		FirstOrCreate(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
