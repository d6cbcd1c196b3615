package store

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
)

// ClearAll wipes every cleaning and inspection record and resets all DND
// flags and priorities inside one transaction. Either everything happens
// or nothing does; callers broadcast only after the commit.
func (s *Store) ClearAll() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CleaningLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.InspectionLog{}).Error; err != nil {
			return err
		}
		err := tx.Model(&models.RoomDND{}).Where("1 = 1").Updates(map[string]interface{}{
			"dnd_status": false,
			"dnd_set_by": nil,
			"dnd_set_at": nil,
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.RoomPriority{}).Where("1 = 1").
			Update("priority", models.DefaultPriority).Error
	})
}
