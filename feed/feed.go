package feed

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/housekeeping-app/models"
)

// Socket event names. The payload broadcast under each name is byte-for-
// byte the payload persisted to the live feed log.
const (
	EventRoomUpdate            = "roomUpdate"
	EventRoomChecked           = "roomChecked"
	EventDNDUpdate             = "dndUpdate"
	EventPriorityUpdate        = "priorityUpdate"
	EventNoteUpdate            = "noteUpdate"
	EventInspectionUpdate      = "inspectionUpdate"
	EventInspectionSubmitted   = "inspectionSubmitted"
	EventResetCleaning         = "resetCleaning"
	EventClearLogs             = "clearLogs"
	EventResetCheckedRooms     = "resetCheckedRooms"
	EventInspectionLogsCleared = "inspectionLogsCleared"
	EventInitialData           = "initialData"
	EventInitialDataError      = "initialDataError"
)

var (
	db      *gorm.DB
	persist bool
)

// Init wires the feed to its event log. persistEvents=false disables
// writes entirely (load shedding, ephemeral deployments) while leaving
// broadcast untouched.
func Init(database *gorm.DB, persistEvents bool) {
	db = database
	persist = persistEvents
}

// Emit mirrors the payload into the event log and broadcasts it to every
// connected client. The log write is best effort: a persistence failure is
// logged and the broadcast still goes out.
func Emit(event string, room *string, payload map[string]interface{}, meta models.JSONMap) {
	appendEvent(time.Now(), event, room, payload, meta)
	broadcast(Message{Event: event, Data: payload})
}

// EmitRoomUpdate announces a cleaning lifecycle change (start/finish).
func EmitRoomUpdate(room, status, previousStatus string, meta models.JSONMap) {
	Emit(EventRoomUpdate, &room, map[string]interface{}{
		"roomNumber":     room,
		"status":         status,
		"previousStatus": previousStatus,
	}, meta)
}

// EmitRoomChecked announces a supervisor check.
func EmitRoomChecked(room, checkedBy string, checkedTime time.Time, meta models.JSONMap) {
	Emit(EventRoomChecked, &room, map[string]interface{}{
		"roomNumber":  room,
		"status":      models.StatusChecked,
		"checkedBy":   checkedBy,
		"checkedTime": checkedTime,
	}, meta)
}

// EmitDNDUpdate announces a Do-Not-Disturb toggle.
func EmitDNDUpdate(dnd *models.RoomDND, meta models.JSONMap) {
	Emit(EventDNDUpdate, &dnd.RoomNumber, map[string]interface{}{
		"roomNumber": dnd.RoomNumber,
		"dndStatus":  dnd.DNDStatus,
		"dndSetBy":   dnd.DNDSetBy,
		"dndSetAt":   dnd.DNDSetAt,
	}, meta)
}

// EmitPriorityUpdate announces a priority change.
func EmitPriorityUpdate(room, priority string, allowCleaningTime *string, meta models.JSONMap) {
	Emit(EventPriorityUpdate, &room, map[string]interface{}{
		"roomNumber":        room,
		"priority":          priority,
		"allowCleaningTime": allowCleaningTime,
	}, meta)
}

// EmitNoteUpdate announces a room note change with the full stored note.
func EmitNoteUpdate(note *models.RoomNote, meta models.JSONMap) {
	Emit(EventNoteUpdate, &note.RoomNumber, map[string]interface{}{
		"roomNumber": note.RoomNumber,
		"notes":      note,
	}, meta)
}

// EmitInspectionUpdate announces a single checklist item change.
func EmitInspectionUpdate(room, item, status, updatedBy string, meta models.JSONMap) {
	Emit(EventInspectionUpdate, &room, map[string]interface{}{
		"roomNumber": room,
		"item":       item,
		"status":     status,
		"updatedBy":  updatedBy,
	}, meta)
}

// EmitInspectionSubmitted announces a full checklist submission.
func EmitInspectionSubmitted(room string, overallScore *float64, updatedBy string, meta models.JSONMap) {
	Emit(EventInspectionSubmitted, &room, map[string]interface{}{
		"roomNumber":   room,
		"overallScore": overallScore,
		"updatedBy":    updatedBy,
	}, meta)
}

// EmitResetCleaning announces a per-room reset back to "available".
func EmitResetCleaning(room string, meta models.JSONMap) {
	Emit(EventResetCleaning, &room, map[string]interface{}{
		"roomNumber": room,
		"status":     models.StatusAvailable,
	}, meta)
}

// EmitSystem announces property-wide events (bulk clear and friends) that
// carry no room of their own.
func EmitSystem(event string, payload map[string]interface{}, meta models.JSONMap) {
	Emit(event, nil, payload, meta)
}
