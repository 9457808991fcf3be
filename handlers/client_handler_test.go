package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tactical-realm/server/messages"
	"tactical-realm/server/persistence"
	"tactical-realm/server/services"
)

type reply struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

func newTestServer(t *testing.T) (*httptest.Server, *ClientManager) {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "encounters.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return serve(t, services.NewEncounterService(store, services.Options{ChunkSize: 8, MaxViewRadius: 5}))
}

func serve(t *testing.T, svc *services.EncounterService) (*httptest.Server, *ClientManager) {
	t.Helper()
	manager := NewClientManager()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		HandleClientConnection(conn, svc, manager)
	}))
	t.Cleanup(server.Close)
	return server, manager
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func request(t *testing.T, conn *websocket.Conn, msgType messages.MessageType, payload interface{}) reply {
	t.Helper()
	if err := conn.WriteJSON(messages.BaseMessage{Type: msgType, Payload: payload}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	return receive(t, conn)
}

func receive(t *testing.T, conn *websocket.Conn) reply {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return r
}

func TestNewEncounterRoundTrip(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server)

	r := request(t, conn, messages.MessageTypeNewEncounter, messages.NewEncounterMessage{
		Name:         "Ambush",
		Seed:         42,
		MonsterCount: 3,
		NPCClasses:   []string{"warrior"},
	})
	if r.Type != messages.MessageTypeEncounterState {
		t.Fatalf("reply type = %s, payload %s", r.Type, r.Payload)
	}
	var state struct {
		EncounterID string `json:"encounter_id"`
		Name        string `json:"name"`
		State       struct {
			Units []struct {
				ID string `json:"id"`
			} `json:"units"`
		} `json:"state"`
	}
	if err := json.Unmarshal(r.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Name != "Ambush" || state.EncounterID == "" {
		t.Fatalf("state header = %+v", state)
	}
	if len(state.State.Units) != 5 {
		t.Fatalf("got %d units, want player, 3 monsters and 1 npc", len(state.State.Units))
	}

	r = request(t, conn, messages.MessageTypeMapView, messages.MapViewMessage{
		EncounterID: state.EncounterID,
		Radius:      50,
	})
	if r.Type != messages.MessageTypeMapView {
		t.Fatalf("reply type = %s, payload %s", r.Type, r.Payload)
	}
	var view services.MapView
	if err := json.Unmarshal(r.Payload, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Radius != 5 || len(view.Tiles) != 11 {
		t.Fatalf("view radius %d with %d rows, want clamped to 5", view.Radius, len(view.Tiles))
	}

	r = request(t, conn, messages.MessageTypeListEncounters, nil)
	var list messages.EncounterListMessage
	if err := json.Unmarshal(r.Payload, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Encounters) != 1 || list.Encounters[0].ID != state.EncounterID {
		t.Fatalf("list = %+v", list.Encounters)
	}
}

func TestErrorReplies(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server)

	cases := []struct {
		name    string
		msgType messages.MessageType
		payload interface{}
		code    string
	}{
		{"negative seed", messages.MessageTypeNewEncounter, messages.NewEncounterMessage{Seed: -1}, "INVALID_SEED"},
		{"missing encounter", messages.MessageTypeLoadEncounter, messages.LoadEncounterMessage{EncounterID: "nope"}, "ENCOUNTER_NOT_FOUND"},
		{"missing chunks", messages.MessageTypeChunks, messages.ChunksMessage{EncounterID: "nope"}, "ENCOUNTER_NOT_FOUND"},
		{"unknown type", "teleport", nil, "UNKNOWN_MESSAGE_TYPE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := request(t, conn, tc.msgType, tc.payload)
			if r.Type != messages.MessageTypeError {
				t.Fatalf("reply type = %s", r.Type)
			}
			var e messages.ErrorMessage
			if err := json.Unmarshal(r.Payload, &e); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if e.Code != tc.code {
				t.Fatalf("code = %s, want %s", e.Code, tc.code)
			}
		})
	}
}

func TestNPCClassesListsAllClasses(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server)

	r := request(t, conn, messages.MessageTypeNPCClasses, nil)
	var msg messages.NPCClassesMessage
	if err := json.Unmarshal(r.Payload, &msg); err != nil {
		t.Fatalf("decode classes: %v", err)
	}
	if len(msg.Classes) != 5 || msg.Classes[0].Key != "warrior" {
		t.Fatalf("classes = %+v", msg.Classes)
	}
}

func TestNewEncounterIsAnnouncedToOthers(t *testing.T) {
	server, manager := newTestServer(t)
	creator := dial(t, server)
	watcher := dial(t, server)

	// A reply proves each client has been registered
	request(t, creator, messages.MessageTypeNPCClasses, nil)
	request(t, watcher, messages.MessageTypeNPCClasses, nil)
	if manager.Count() != 2 {
		t.Fatalf("Count = %d, want 2", manager.Count())
	}

	request(t, creator, messages.MessageTypeNewEncounter, messages.NewEncounterMessage{Seed: 7})

	r := receive(t, watcher)
	if r.Type != messages.MessageTypeEncounterCreated {
		t.Fatalf("watcher got %s", r.Type)
	}
	var created messages.EncounterCreatedMessage
	if err := json.Unmarshal(r.Payload, &created); err != nil {
		t.Fatalf("decode announcement: %v", err)
	}
	if created.Seed != 7 || created.Name != "World 7" {
		t.Fatalf("announcement = %+v", created)
	}
}

func TestClientIsRemovedWhenHandlerPanics(t *testing.T) {
	// Without a service every encounter request panics inside the handler
	server, manager := serve(t, nil)
	conn := dial(t, server)

	request(t, conn, messages.MessageTypeNPCClasses, nil)
	if manager.Count() != 1 {
		t.Fatalf("Count = %d, want 1", manager.Count())
	}

	if err := conn.WriteJSON(messages.BaseMessage{Type: messages.MessageTypeListEncounters}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for manager.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client stayed registered after its handler panicked")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNewEncounterAcceptsLargestSeed(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server)

	frame := `{"type":"new_encounter","payload":{"seed":9223372036854775807,"monster_count":3,"npc_count":2}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	r := receive(t, conn)
	if r.Type != messages.MessageTypeEncounterState {
		t.Fatalf("reply type = %s, payload %s", r.Type, r.Payload)
	}
	var state struct {
		State struct {
			Map struct {
				Seed int64 `json:"seed"`
			} `json:"map"`
		} `json:"state"`
	}
	if err := json.Unmarshal(r.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.State.Map.Seed != math.MaxInt64 {
		t.Fatalf("map seed = %d, want %d", state.State.Map.Seed, int64(math.MaxInt64))
	}
}
