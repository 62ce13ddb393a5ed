package services

import (
	"testing"

	"blogicum/internal/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.Register(f.ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.Password)

	_, err = f.users.Register(f.ctx, "alice", "another-pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := f.users.Authenticate(f.ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.users.Authenticate(f.ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Authenticate(f.ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice")

	assert.ErrorIs(t, f.users.ChangePassword(f.ctx, u, "wrong", "newpassword1"), ErrInvalidCredentials)
	require.NoError(t, f.users.ChangePassword(f.ctx, u, "password123", "newpassword1"))

	_, err := f.users.Authenticate(f.ctx, "alice", "newpassword1")
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.user(t, "bob")

	err := f.users.UpdateProfile(f.ctx, alice, forms.ProfileForm{Username: "bob"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	require.NoError(t, f.users.UpdateProfile(f.ctx, alice, forms.ProfileForm{
		Username:  "alice2",
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
	}))
	assert.Equal(t, "alice2", alice.Username)

	reloaded, err := f.users.GetByUsername(f.ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", reloaded.DisplayName())
	assert.Equal(t, "alice@example.com", reloaded.Email)

	// Keeping the same username is not a conflict with oneself.
	require.NoError(t, f.users.UpdateProfile(f.ctx, alice, forms.ProfileForm{Username: "alice2"}))
}

// claimUsername returns a callback that inserts a user named username right
// before the next write runs, the way a concurrent request that passed the
// same availability check would.
func claimUsername(username string) func(*gorm.DB) {
	claimed := false
	return func(tx *gorm.DB) {
		if claimed {
			return
		}
		claimed = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO users (username, password, first_name, last_name, email, created_at, updated_at) VALUES (?, ?, '', '', '', ?, ?)",
			username, "x", testNow, testNow)
		if err != nil {
			_ = tx.AddError(err)
		}
	}
}

func TestRegisterLosingUniqueIndexRace(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").
		Register("test:claim_username", claimUsername("dave")))

	_, err := f.users.Register(f.ctx, "dave", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateProfileLosingUniqueIndexRace(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").
		Register("test:claim_username", claimUsername("carol")))

	err := f.users.UpdateProfile(f.ctx, alice, forms.ProfileForm{Username: "carol"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, "alice", alice.Username)

	reloaded, err := f.users.GetByID(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", reloaded.Username)
}
