package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotabics/pitchtimerai-sub001/dbpool"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// autosaveDeckID is the fixed library row the working deck autosaves into.
// Explicit saves get a fresh uuid so they never collide with it.
const autosaveDeckID = "autosave"

// DeckSummary is one library row as shown in the recent-decks list.
type DeckSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	SlideCount int    `json:"slideCount"`
	UpdatedAt  string `json:"updatedAt"` // RFC3339
}

// DeckLibraryService persists complete decks to a local SQLite database.
// Each row stores the full deck-pack payload, so a library load restores
// slides, theme, transition, and the notes flag exactly like a pack import.
type DeckLibraryService struct {
	mu      sync.Mutex
	dataDir string
	logger  func(string)
	manager *dbpool.DBManager
	db      *sql.DB
}

// NewDeckLibraryService creates the library bound to a data directory.
func NewDeckLibraryService(dataDir string, logger func(string)) *DeckLibraryService {
	return &DeckLibraryService{
		dataDir: dataDir,
		logger:  logger,
		manager: dbpool.New(dbpool.EngineSQLite, logger),
	}
}

// Name returns the service name
func (ls *DeckLibraryService) Name() string {
	return "library"
}

// Initialize opens the library database and creates the schema.
func (ls *DeckLibraryService) Initialize(ctx context.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := os.MkdirAll(ls.dataDir, 0755); err != nil {
		return WrapError("library", "Initialize", err)
	}

	db, err := ls.manager.OpenWritable(ls.dbPath())
	if err != nil {
		return WrapError("library", "Initialize", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slide_count INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		payload TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return WrapError("library", "Initialize", err)
	}

	ls.db = db
	ls.log("[LIB] Deck library ready at " + ls.dbPath())
	return nil
}

// Shutdown closes the library database.
func (ls *DeckLibraryService) Shutdown() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.db != nil {
		err := ls.db.Close()
		ls.db = nil
		return err
	}
	return nil
}

func (ls *DeckLibraryService) dbPath() string {
	return filepath.Join(ls.dataDir, "library.db")
}

// SaveDeck stores the deck under a new library id and returns it.
func (ls *DeckLibraryService) SaveDeck(snapshot DeckSnapshot, title, author string) (string, error) {
	id := uuid.NewString()
	if err := ls.saveAs(id, snapshot, title, author); err != nil {
		return "", err
	}
	ls.logf("[LIB] Saved deck %q as %s (%d slides)", title, id, len(snapshot.Slides))
	return id, nil
}

// SaveAutosave overwrites the fixed autosave row with the working deck.
func (ls *DeckLibraryService) SaveAutosave(snapshot DeckSnapshot, title, author string) error {
	return ls.saveAs(autosaveDeckID, snapshot, title, author)
}

func (ls *DeckLibraryService) saveAs(id string, snapshot DeckSnapshot, title, author string) error {
	if len(snapshot.Slides) == 0 {
		return errors.New(i18n.T("deck.empty"))
	}

	pack := BuildDeckPack(snapshot.Slides, snapshot.Theme, snapshot.TransitionEffect,
		snapshot.ShowSpeakerNotes, title, author)
	payload, err := json.Marshal(pack)
	if err != nil {
		return WrapError("library", "SaveDeck", err)
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.db == nil {
		return WrapError("library", "SaveDeck", errors.New("library not initialized"))
	}

	_, err = ls.db.Exec(`INSERT INTO decks (id, title, slide_count, updated_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			slide_count = excluded.slide_count,
			updated_at = excluded.updated_at,
			payload = excluded.payload`,
		id, title, len(snapshot.Slides), time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("%s", i18n.T("library.save_failed", err.Error()))
	}
	ls.logf("[LIB] %s: %q (%d slides)", i18n.T("library.saved"), title, len(snapshot.Slides))
	return nil
}

// ListRecent returns library rows newest-first, capped at limit (0 = all).
func (ls *DeckLibraryService) ListRecent(limit int) ([]DeckSummary, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.db == nil {
		return nil, WrapError("library", "ListRecent", errors.New("library not initialized"))
	}

	query := "SELECT id, title, slide_count, updated_at FROM decks ORDER BY updated_at DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := ls.db.Query(query, args...)
	if err != nil {
		return nil, WrapError("library", "ListRecent", err)
	}
	defer rows.Close()

	summaries := []DeckSummary{}
	for rows.Next() {
		var s DeckSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.SlideCount, &s.UpdatedAt); err != nil {
			return nil, WrapError("library", "ListRecent", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// LoadDeck restores a library row into a validated import result. The caller
// applies it to the store the same way a pack import would.
func (ls *DeckLibraryService) LoadDeck(id string) (*ImportResult, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.db == nil {
		return nil, WrapError("library", "LoadDeck", errors.New("library not initialized"))
	}

	var payload string
	err := ls.db.QueryRow("SELECT payload FROM decks WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.New(i18n.T("library.not_found"))
	}
	if err != nil {
		return nil, fmt.Errorf("%s", i18n.T("library.load_failed", err.Error()))
	}

	var pack DeckPack
	if err := json.Unmarshal([]byte(payload), &pack); err != nil {
		return nil, fmt.Errorf("%s", i18n.T("library.load_failed", err.Error()))
	}
	if len(pack.Slides) == 0 {
		return nil, errors.New(i18n.T("library.load_failed", "stored deck has no slides"))
	}

	return packToImportResult(pack), nil
}

// DeleteDeck removes a library row. Deleting a missing id fails.
func (ls *DeckLibraryService) DeleteDeck(id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.db == nil {
		return WrapError("library", "DeleteDeck", errors.New("library not initialized"))
	}

	res, err := ls.db.Exec("DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return WrapError("library", "DeleteDeck", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(i18n.T("library.not_found"))
	}
	ls.logf("[LIB] %s: %s", i18n.T("library.deleted"), id)
	return nil
}

// log writes through the injected logger
func (ls *DeckLibraryService) log(msg string) {
	if ls.logger != nil {
		ls.logger(msg)
	}
}

// logf writes a formatted message through the injected logger
func (ls *DeckLibraryService) logf(format string, args ...interface{}) {
	if ls.logger != nil {
		ls.logger(fmt.Sprintf(format, args...))
	}
}
