package messages

import "tactical-realm/server/models"

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeNewEncounter     MessageType = "new_encounter"
	MessageTypeLoadEncounter    MessageType = "load_encounter"
	MessageTypeListEncounters   MessageType = "list_encounters"
	MessageTypeMapView          MessageType = "map_view"
	MessageTypeChunks           MessageType = "chunks"
	MessageTypeNPCClasses       MessageType = "npc_classes"
	MessageTypeEncounterState   MessageType = "encounter_state"
	MessageTypeEncounterList    MessageType = "encounter_list"
	MessageTypeEncounterCreated MessageType = "encounter_created"
	MessageTypeError            MessageType = "error"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewEncounterMessage requests a freshly generated encounter
type NewEncounterMessage struct {
	Name            string           `json:"name"`
	Seed            int64            `json:"seed"`
	MapName         string           `json:"map_name"`
	WallDensity     float64          `json:"wall_density"`
	PlayerStart     *models.Position `json:"player_start"`
	PlayerMoveRange int              `json:"player_move_range"`
	MonsterCount    int              `json:"monster_count"`
	NPCCount        int              `json:"npc_count"`
	NPCClasses      []string         `json:"npc_classes"`
	NPCMoveRange    int              `json:"npc_move_range"`
}

// LoadEncounterMessage requests an existing encounter
type LoadEncounterMessage struct {
	EncounterID string `json:"encounter_id"`
}

// MapViewMessage requests a square window of an encounter's map
type MapViewMessage struct {
	EncounterID string `json:"encounter_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Radius      int    `json:"radius"`
}

// ChunksMessage requests the chunks around a position
type ChunksMessage struct {
	EncounterID string `json:"encounter_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// EncounterStateMessage carries a generated encounter
type EncounterStateMessage struct {
	EncounterID string      `json:"encounter_id"`
	Name        string      `json:"name"`
	State       interface{} `json:"state"`
}

// EncounterCreatedMessage tells other clients a new encounter exists
type EncounterCreatedMessage struct {
	EncounterID string `json:"encounter_id"`
	Name        string `json:"name"`
	Seed        int64  `json:"seed"`
}

// EncounterListMessage lists stored encounters
type EncounterListMessage struct {
	Encounters []*models.EncounterRecord `json:"encounters"`
}

// ChunkListMessage carries streamed chunks
type ChunkListMessage struct {
	EncounterID string      `json:"encounter_id"`
	Chunks      interface{} `json:"chunks"`
}

// NPCClassesMessage lists the companion classes
type NPCClassesMessage struct {
	Classes []models.NPCClass `json:"classes"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
