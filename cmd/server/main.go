package main

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"tactical-realm/server/config"
	"tactical-realm/server/handlers"
	"tactical-realm/server/persistence"
	"tactical-realm/server/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		return true
	},
}

func openStorage(cfg config.Config) (persistence.Storage, error) {
	switch cfg.DBType {
	case config.DBTypePostgres:
		log.Println("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.DatabaseURL)
	case config.DBTypeSQLite:
		log.Println("Using SQLite persistence")
		return persistence.NewSQLiteStore(cfg.SQLitePath)
	default:
		log.Println("Using JSON persistence")
		return persistence.NewJSONStore(cfg.DBFile)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	log.Println("Persistence initialized successfully")

	// Initialize services
	encounterService := services.NewEncounterService(db, services.Options{
		ChunkSize:         cfg.ChunkSize,
		ChunkBufferRadius: cfg.ChunkBufferRadius,
		MapCacheCapacity:  cfg.MapCacheCapacity,
		MaxViewRadius:     cfg.MaxViewRadius,
	})
	clientManager := handlers.NewClientManager()

	// Set up HTTP routes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		handlers.HandleClientConnection(conn, encounterService, clientManager)
	})

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
