// Package log provides the audit log for tagger operations.
// Entries are stored in ~/.tagger/log/tagger-log.db and record CLI commands,
// MCP tool calls and the recoverable failures of widget instances (remote
// search errors, rejected configuration).
//
// # Fluent API
//
//	log.Event("tag:resolve", "add").
//		Author(cmd.Author()).
//		Widget(w.ID()).
//		Tag(text).
//		Write(err)
//
//	log.Event("resolver:suggest", "search").
//		Tag(query).
//		Count(len(suggestions)).
//		Detail("lang", lang).
//		Write(err)
//
// The source follows "{extension}:{command}" for CLI commands, "mcp:{tool}"
// for MCP tools and "{package}:{operation}" for library internals.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "tag:suggest", "mcp:tagger_add"
	Author string // who performed the action
	Action string // verb: suggest, add, remove, lang, ...
	Widget string // tagger instance ID, if the operation belongs to one
	Tag    string // input: tag value or query text

	// Output fields - populated after the operation completes
	Resolved string // output: resolved label or language
	Count    int    // output: suggestions returned, tags held, ...

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Widget sets the tagger instance the operation ran against.
func (b *Builder) Widget(id string) *Builder {
	b.entry.Widget = id
	return b
}

// Tag sets the tag value or query text the operation received.
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Resolved sets what the input resolved to, e.g. a localized label or the
// language actually activated after fallback.
func (b *Builder) Resolved(s string) *Builder {
	b.entry.Resolved = s
	return b
}

// Count sets the number of items the operation produced.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent entries. dir is
// the directory the command ran in.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
