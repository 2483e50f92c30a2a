package repos

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Seed is the operator guaranteed to exist after OpenDB.
type Seed struct {
	Email    string
	Name     string
	Password string
}

func OpenDB(dsn string, seed Seed) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is its own database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Idempotent; safe to run every start
	if err := seedOperator(db, seed); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Back-office logins
CREATE TABLE IF NOT EXISTS operators(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'ADMIN',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_operators_email ON operators(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- value of the 'sid' cookie, issued at login
  operator_id TEXT NOT NULL REFERENCES operators(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  expires_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_operator ON sessions(operator_id);

-- Contact / enquiry inbox
CREATE TABLE IF NOT EXISTS contact_messages(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  subject TEXT NOT NULL,
  message TEXT NOT NULL,
  book_id INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'NEW' CHECK (status IN ('NEW','HANDLED')),
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_contact_status ON contact_messages(status);
CREATE INDEX IF NOT EXISTS idx_contact_created_at ON contact_messages(created_at);
`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	// Sessions from before expiry tracking are dropped; operators sign in again.
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM pragma_table_info('sessions') WHERE name='expires_at'`); err != nil {
		return err
	}
	if n == 0 {
		if _, err := db.Exec(`DROP TABLE sessions`); err != nil {
			return err
		}
		_, err := db.Exec(schema)
		return err
	}
	return nil
}

// seedOperator inserts the configured operator once; an existing email keeps its password.
func seedOperator(db *sqlx.DB, s Seed) error {
	if s.Email == "" || s.Password == "" {
		log.Println("[seed] no admin credentials configured; skipping operator seed")
		return nil
	}
	if s.Name == "" {
		s.Name = "Admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), 12)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
		INSERT INTO operators(id,email,name,password_hash,role)
		VALUES(?,?,?,?, 'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, "op-"+uuid.NewString(), strings.ToLower(s.Email), s.Name, string(hash))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("[seed] operator %s created", s.Email)
	}
	return nil
}
