// Package cache provides a SQLite-backed compile cache mapping source
// text to its compiled chunk. The cache is advisory: a missing or
// undecodable entry is a miss, never a failure of the compile pipeline.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/ember-lang/ember/vm"
)

var log = commonlog.GetLogger("ember.cache")

// Store handles SQLite storage for compiled chunks, keyed by the SHA-256
// of the source text.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		source_hash TEXT PRIMARY KEY,
		chunk BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get looks up the chunk compiled from source. The second result reports
// whether the lookup hit; an entry that fails to decode counts as a miss.
func (s *Store) Get(source string) (*vm.Chunk, bool, error) {
	key := sourceKey(source)

	var blob []byte
	err := s.db.QueryRow("SELECT chunk FROM chunks WHERE source_hash = ?", key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache %s: %w", s.path, err)
	}

	chunk, err := vm.DecodeChunk(blob)
	if err != nil {
		log.Infof("discarding undecodable cache entry %s: %s", key, err.Error())
		return nil, false, nil
	}
	return chunk, true, nil
}

// Put stores the chunk compiled from source, replacing any previous entry.
func (s *Store) Put(source string, chunk *vm.Chunk) error {
	blob, err := vm.EncodeChunk(chunk)
	if err != nil {
		return fmt.Errorf("encoding chunk: %w", err)
	}

	key := sourceKey(source)
	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO chunks (source_hash, chunk) VALUES (?, ?)",
		key, blob,
	); err != nil {
		return fmt.Errorf("storing chunk in %s: %w", s.path, err)
	}

	log.Debugf("cached chunk %s (%d bytes)", key, len(blob))
	return nil
}

func sourceKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
