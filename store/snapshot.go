package store

import (
	"time"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/rooms"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// Snapshot is the full current-day state handed to a freshly connected
// client so it converges with long-lived clients without replaying the
// event history. The JSON shape is part of the wire contract.
type Snapshot struct {
	CleaningStatus map[string]string          `json:"cleaningStatus"`
	DNDStatus      map[string]string          `json:"dndStatus"`
	Priorities     map[string]string          `json:"priorities"`
	InspectionLogs []models.InspectionLog     `json:"inspectionLogs"`
	RoomNotes      map[string]models.RoomNote `json:"roomNotes"`
}

// BuildSnapshot assembles the snapshot for the given day. Rooms with no
// cleaning record yet are seeded with a default "available" one first, so
// every room appears and later actions find their record in place.
func (s *Store) BuildSnapshot(day time.Time) (*Snapshot, error) {
	dayKey := utils.StartOfDay(day)
	dayStart, dayEnd := utils.DayRange(day)

	var logs []models.CleaningLog
	if err := s.DB.Where("date = ?", dayKey).Find(&logs).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(logs))
	for _, log := range logs {
		seen[log.RoomNumber] = true
	}
	var missing []models.CleaningLog
	for _, room := range rooms.All() {
		if !seen[room] {
			missing = append(missing, models.CleaningLog{
				RoomNumber: room,
				Date:       dayKey,
				Status:     models.StatusAvailable,
			})
		}
	}
	if len(missing) > 0 {
		if err := s.DB.Create(&missing).Error; err != nil {
			return nil, err
		}
		logs = append(logs, missing...)
	}

	snap := &Snapshot{
		CleaningStatus: make(map[string]string, len(logs)),
		DNDStatus:      map[string]string{},
		Priorities:     map[string]string{},
		InspectionLogs: []models.InspectionLog{},
		RoomNotes:      map[string]models.RoomNote{},
	}
	for _, log := range logs {
		snap.CleaningStatus[log.RoomNumber] = log.DeriveStatus()
	}

	var dnds []models.RoomDND
	if err := s.DB.Where("dnd_set_at >= ? AND dnd_set_at < ?", dayStart, dayEnd).Find(&dnds).Error; err != nil {
		return nil, err
	}
	for _, dnd := range dnds {
		if dnd.DNDStatus {
			snap.DNDStatus[dnd.RoomNumber] = "dnd"
		} else {
			snap.DNDStatus[dnd.RoomNumber] = "available"
		}
	}

	var priorities []models.RoomPriority
	if err := s.DB.Find(&priorities).Error; err != nil {
		return nil, err
	}
	for _, p := range priorities {
		snap.Priorities[p.RoomNumber] = p.Priority
	}

	if err := s.DB.Where("date = ?", dayKey).Find(&snap.InspectionLogs).Error; err != nil {
		return nil, err
	}

	var notes []models.RoomNote
	if err := s.DB.Where("updated_at >= ? AND updated_at < ?", dayStart, dayEnd).Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, note := range notes {
		snap.RoomNotes[note.RoomNumber] = note
	}

	return snap, nil
}
