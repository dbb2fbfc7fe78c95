// log_storage.go persists audit entries to SQLite.
//
// Errors while logging are reported on stderr and otherwise ignored: a tag
// commit must succeed even if it cannot be recorded.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, widget, tag,
		                 resolved, count, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Widget), nilIfEmpty(e.Tag),
		nilIfEmpty(e.Resolved), nilIfZero(e.Count),
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tagger: audit log write failed: %v\n", err)
	}
}

// dbPathFunc returns the database path. Tests override it.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tagger", "log", "tagger-log.db")
	}
	return filepath.Join(home, ".tagger", "log", "tagger-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash derives a 64-bit project identifier from a directory path.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			start    INTEGER NOT NULL,
			end      INTEGER NOT NULL,
			project  TEXT NOT NULL,
			source   TEXT NOT NULL,
			author   TEXT,
			action   TEXT NOT NULL,
			widget   TEXT,
			tag      TEXT,
			resolved TEXT,
			count    INTEGER,
			success  INTEGER NOT NULL,
			error    TEXT,
			detail   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_widget ON log(widget);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nilIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
