package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"tactical-realm/server/messages"
	"tactical-realm/server/models"
	"tactical-realm/server/network"
	"tactical-realm/server/services"
	"tactical-realm/server/worldgen"
)

var clientSequence atomic.Int64

// ClientHandler manages a single client connection
type ClientHandler struct {
	id               string
	conn             *network.Connection
	encounterService *services.EncounterService
	clientManager    *ClientManager
}

// HandleClientConnection serves one client until its connection closes
func HandleClientConnection(wsConn *websocket.Conn, encounterService *services.EncounterService, clientManager *ClientManager) {
	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		id:               fmt.Sprintf("client_%d", clientSequence.Add(1)),
		conn:             conn,
		encounterService: encounterService,
		clientManager:    clientManager,
	}
	log.Printf("New connection %s from %s", handler.id, conn.RemoteAddr())

	clientManager.AddClient(handler.id, handler)
	defer func() {
		clientManager.RemoveClient(handler.id)
		log.Printf("Client %s disconnected", handler.id)
	}()

	// Start the write pump in a goroutine
	go conn.WritePump()

	// Handle the read pump in the current goroutine
	conn.ReadPump(handler)
}

// inboundMessage keeps the payload raw so large integer seeds are decoded
// straight into int64 rather than through float64
type inboundMessage struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var baseMsg inboundMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		h.sendError("BAD_MESSAGE", "Message is not valid JSON")
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeNewEncounter:
		h.handleNewEncounter(baseMsg.Payload)
	case messages.MessageTypeLoadEncounter:
		h.handleLoadEncounter(baseMsg.Payload)
	case messages.MessageTypeListEncounters:
		h.handleListEncounters()
	case messages.MessageTypeMapView:
		h.handleMapView(baseMsg.Payload)
	case messages.MessageTypeChunks:
		h.handleChunks(baseMsg.Payload)
	case messages.MessageTypeNPCClasses:
		h.handleNPCClasses()
	default:
		log.Printf("Unknown message type: %s", baseMsg.Type)
		h.sendError("UNKNOWN_MESSAGE_TYPE", "Unknown message type received")
	}
}

// decodePayload decodes a raw payload into a typed message. A missing
// payload leaves the target at its zero value.
func decodePayload(payload json.RawMessage, target interface{}) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, target)
}

// handleNewEncounter generates an encounter and announces it to other clients
func (h *ClientHandler) handleNewEncounter(payload json.RawMessage) {
	var req messages.NewEncounterMessage
	if err := decodePayload(payload, &req); err != nil {
		log.Printf("Error decoding new encounter message: %v", err)
		h.sendError("BAD_PAYLOAD", "Invalid new_encounter payload")
		return
	}

	opts := worldgen.GameStateOptions{
		Seed:            req.Seed,
		MapName:         req.MapName,
		WallDensity:     req.WallDensity,
		PlayerMoveRange: req.PlayerMoveRange,
		MonsterCount:    req.MonsterCount,
		NPCCount:        req.NPCCount,
		NPCClasses:      req.NPCClasses,
		NPCMoveRange:    req.NPCMoveRange,
	}
	if req.PlayerStart != nil {
		opts.PlayerStart = *req.PlayerStart
	}

	encounter, err := h.encounterService.CreateEncounter(req.Name, opts)
	if err != nil {
		log.Printf("Error creating encounter: %v", err)
		if errors.Is(err, worldgen.ErrNegativeSeed) {
			h.sendError("INVALID_SEED", err.Error())
			return
		}
		h.sendError("CREATE_FAILED", "Failed to create encounter")
		return
	}

	h.sendEncounterState(encounter)

	h.clientManager.BroadcastToOthers(h.id, messages.BaseMessage{
		Type: messages.MessageTypeEncounterCreated,
		Payload: messages.EncounterCreatedMessage{
			EncounterID: encounter.Record.ID,
			Name:        encounter.Record.Name,
			Seed:        encounter.Record.Seed,
		},
	})
}

// handleLoadEncounter sends an existing encounter, regenerating it if needed
func (h *ClientHandler) handleLoadEncounter(payload json.RawMessage) {
	var req messages.LoadEncounterMessage
	if err := decodePayload(payload, &req); err != nil {
		log.Printf("Error decoding load encounter message: %v", err)
		h.sendError("BAD_PAYLOAD", "Invalid load_encounter payload")
		return
	}

	encounter, err := h.encounterService.GetEncounter(req.EncounterID)
	if err != nil {
		h.sendServiceError(err)
		return
	}
	h.sendEncounterState(encounter)
}

func (h *ClientHandler) handleListEncounters() {
	records, err := h.encounterService.ListEncounters()
	if err != nil {
		log.Printf("Error listing encounters: %v", err)
		h.sendError("LIST_FAILED", "Failed to list encounters")
		return
	}
	if records == nil {
		records = []*models.EncounterRecord{}
	}
	h.send(messages.MessageTypeEncounterList, messages.EncounterListMessage{Encounters: records})
}

func (h *ClientHandler) handleMapView(payload json.RawMessage) {
	var req messages.MapViewMessage
	if err := decodePayload(payload, &req); err != nil {
		log.Printf("Error decoding map view message: %v", err)
		h.sendError("BAD_PAYLOAD", "Invalid map_view payload")
		return
	}

	view, err := h.encounterService.GetMapView(req.EncounterID, req.X, req.Y, req.Radius)
	if err != nil {
		h.sendServiceError(err)
		return
	}
	h.send(messages.MessageTypeMapView, view)
}

func (h *ClientHandler) handleChunks(payload json.RawMessage) {
	var req messages.ChunksMessage
	if err := decodePayload(payload, &req); err != nil {
		log.Printf("Error decoding chunks message: %v", err)
		h.sendError("BAD_PAYLOAD", "Invalid chunks payload")
		return
	}

	chunks, err := h.encounterService.LoadChunksAround(req.EncounterID, req.X, req.Y)
	if err != nil {
		h.sendServiceError(err)
		return
	}
	h.send(messages.MessageTypeChunks, messages.ChunkListMessage{
		EncounterID: req.EncounterID,
		Chunks:      chunks,
	})
}

func (h *ClientHandler) handleNPCClasses() {
	names := worldgen.GetNPCClassNames()
	classes := make([]models.NPCClass, 0, len(names))
	for _, name := range names {
		if class, ok := worldgen.GetNPCClass(name); ok {
			classes = append(classes, class)
		}
	}
	h.send(messages.MessageTypeNPCClasses, messages.NPCClassesMessage{Classes: classes})
}

func (h *ClientHandler) sendEncounterState(encounter *services.Encounter) {
	h.send(messages.MessageTypeEncounterState, messages.EncounterStateMessage{
		EncounterID: encounter.Record.ID,
		Name:        encounter.Record.Name,
		State:       encounter.State,
	})
}

func (h *ClientHandler) sendServiceError(err error) {
	if errors.Is(err, services.ErrEncounterNotFound) {
		h.sendError("ENCOUNTER_NOT_FOUND", err.Error())
		return
	}
	log.Printf("Error serving encounter request: %v", err)
	h.sendError("INTERNAL_ERROR", "Failed to process request")
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.MessageTypeError, messages.ErrorMessage{
		Code:    code,
		Message: message,
	})
}

func (h *ClientHandler) send(msgType messages.MessageType, payload interface{}) {
	msg := messages.BaseMessage{
		Type:    msgType,
		Payload: payload,
	}
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending %s to %s: %v", msgType, h.id, err)
	}
}
