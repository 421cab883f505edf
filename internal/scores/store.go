package scores

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MaxEntries is how many results are kept per difficulty.
const MaxEntries = 5

// schemaVersion is written into the sqlite user_version pragma. Files
// carrying any other non-zero version are treated as foreign and replaced.
const schemaVersion = 1

type Entry struct {
	Name       string    `json:"name"`
	Difficulty string    `json:"difficulty"`
	Seconds    int       `json:"seconds"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the leaderboard database at path. An unreadable
// or out-of-version file is discarded and replaced with an empty one: a
// broken leaderboard must never stop the game from starting.
func Open(path string) (*Store, error) {
	db, err := open(path)
	if err != nil {
		Log.WithError(err).Warn("leaderboard file unusable, starting empty")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to discard leaderboard file: %w", err)
		}
		if db, err = open(path); err != nil {
			return nil, err
		}
	}
	return &Store{db: db}, nil
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	var version int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		db.Close()
		return nil, err
	}
	if version != 0 && version != schemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported leaderboard version %d", version)
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS score (
	score_id	INTEGER PRIMARY KEY AUTOINCREMENT,
	name		TEXT NOT NULL,
	difficulty	TEXT NOT NULL,
	seconds		INTEGER NOT NULL,
	created_at	TIMESTAMP NOT NULL
);`); err != nil {
		db.Close()
		return nil, err
	}

	if version == 0 {
		if _, err := db.Exec(
			fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion),
		); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts an entry and trims its difficulty back to the top
// MaxEntries results. Ties keep their insertion order.
func (s *Store) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	if _, err := s.db.Exec(`
INSERT INTO score (name, difficulty, seconds, created_at)
VALUES (?, ?, ?, ?);`,
		e.Name, e.Difficulty, e.Seconds, e.CreatedAt,
	); err != nil {
		return err
	}

	_, err := s.db.Exec(`
DELETE FROM score
WHERE difficulty = ?
	AND score_id NOT IN (
		SELECT score_id FROM score
		WHERE difficulty = ?
		ORDER BY seconds ASC, score_id ASC
		LIMIT ?
	);`, e.Difficulty, e.Difficulty, MaxEntries)
	return err
}

// Qualifies reports whether a result would make the board: there is still
// room at its difficulty, or it beats the slowest kept time.
func (s *Store) Qualifies(difficulty string, seconds int) (bool, error) {
	var count, worst int
	if err := s.db.QueryRow(`
SELECT count(*), coalesce(max(seconds), 0) FROM score
WHERE difficulty = ?;`, difficulty,
	).Scan(&count, &worst); err != nil {
		return false, err
	}
	return count < MaxEntries || worst > seconds, nil
}

// Top returns the kept results for a difficulty, best first.
func (s *Store) Top(difficulty string) ([]Entry, error) {
	rows, err := s.db.Query(`
SELECT name, difficulty, seconds, created_at FROM score
WHERE difficulty = ?
ORDER BY seconds ASC, score_id ASC;`, difficulty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.Name, &e.Difficulty, &e.Seconds, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
