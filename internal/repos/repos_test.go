package repos

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolbooks/internal/domain"
)

func openTestDB(t *testing.T) *OperatorRepo {
	t.Helper()
	db, err := OpenDB(":memory:", Seed{Email: "Admin@Schoolbooks.test", Password: "Passw0rd!"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewOperatorRepo(db)
}

func TestSeedOperatorIsIdempotent(t *testing.T) {
	ops := openTestDB(t)

	require.NoError(t, seedOperator(ops.DB, Seed{Email: "admin@schoolbooks.test", Password: "other"}))
	all, err := ops.List()
	require.NoError(t, err)
	require.Len(t, all, 1)

	op := all[0]
	assert.Equal(t, "admin@schoolbooks.test", op.Email)
	assert.Equal(t, "ADMIN", op.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(op.Hash), []byte("Passw0rd!")), "first seed keeps its password")
}

func TestSessionLifecycle(t *testing.T) {
	ops := openTestDB(t)
	op, err := ops.ByEmail("ADMIN@schoolbooks.test")
	require.NoError(t, err)

	require.NoError(t, ops.StartSession("", "sid-1", op.ID, time.Hour))
	got, err := ops.SessionOperator("sid-1")
	require.NoError(t, err)
	assert.Equal(t, op.ID, got.ID)

	// Signing in again from the same browser retires the old sid.
	require.NoError(t, ops.StartSession("sid-1", "sid-2", op.ID, time.Hour))
	_, err = ops.SessionOperator("sid-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = ops.SessionOperator("sid-2")
	require.NoError(t, err)

	require.NoError(t, ops.EndSession("sid-2"))
	_, err = ops.SessionOperator("sid-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = ops.SessionOperator("never-seen")
	assert.Error(t, err)
}

func TestExpiredSessionsAreRejectedAndPurged(t *testing.T) {
	ops := openTestDB(t)
	op, err := ops.ByEmail("admin@schoolbooks.test")
	require.NoError(t, err)

	require.NoError(t, ops.StartSession("", "old", op.ID, -time.Minute))
	_, err = ops.SessionOperator("old")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, ops.StartSession("", "new", op.ID, time.Hour))
	var n int
	require.NoError(t, ops.DB.Get(&n, `SELECT COUNT(*) FROM sessions`))
	assert.Equal(t, 1, n)
}

func TestContactInbox(t *testing.T) {
	ops := openTestDB(t)
	inbox := NewContactRepo(ops.DB)

	m := &domain.ContactMessage{ID: "m-1", Name: "Asha", Email: "asha@example.test", Subject: "books", Message: "Do you stock grade 5 maths?", BookID: 1, Status: domain.MessageNew}
	require.NoError(t, inbox.Create(m))
	assert.NotEmpty(t, m.CreatedAt)
	require.NoError(t, inbox.Create(&domain.ContactMessage{ID: "m-2", Name: "Ravi", Email: "ravi@example.test", Subject: "bulk", Message: "Quote for 200 copies", Status: domain.MessageNew}))

	n, err := inbox.CountNew()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, inbox.MarkHandled("m-1"))
	assert.ErrorIs(t, inbox.MarkHandled("missing"), ErrMessageNotFound)

	fresh, err := inbox.List(domain.MessageNew)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "m-2", fresh[0].ID)

	all, err := inbox.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := inbox.Get("m-1")
	require.NoError(t, err)
	assert.Equal(t, domain.MessageHandled, got.Status)
	assert.EqualValues(t, 1, got.BookID)

	_, err = inbox.Get("nope")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
