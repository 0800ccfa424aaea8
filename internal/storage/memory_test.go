package storage

import (
	"testing"
	"time"

	"newsreel-backend/internal/playback"
	"newsreel-backend/internal/slideshow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id string, at time.Time) *Session {
	return &Session{ID: id, Player: playback.NewPlayer(nil), CreatedAt: at}
}

func TestMemoryStorage_CRUD(t *testing.T) {
	m := NewMemoryStorage(0)
	require.NoError(t, m.Init())

	now := time.Now()
	require.NoError(t, m.CreateSession(newSession("b", now.Add(time.Second))))
	require.NoError(t, m.CreateSession(newSession("a", now)))

	got, err := m.GetSession("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	list, err := m.ListSessions()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	assert.ErrorIs(t, m.CreateSession(newSession("a", now)), ErrSessionExists)

	require.NoError(t, m.DeleteSession("a"))
	_, err = m.GetSession("a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.DeleteSession("a"), ErrSessionNotFound)
}

func TestMemoryStorage_InvalidSession(t *testing.T) {
	m := NewMemoryStorage(0)
	assert.ErrorIs(t, m.CreateSession(nil), ErrInvalidData)
	assert.ErrorIs(t, m.CreateSession(&Session{ID: "x"}), ErrInvalidData)
	assert.ErrorIs(t, m.CreateSession(&Session{Player: playback.NewPlayer(nil)}), ErrInvalidData)
}

func TestMemoryStorage_Limit(t *testing.T) {
	m := NewMemoryStorage(1)
	require.NoError(t, m.CreateSession(newSession("one", time.Now())))
	assert.ErrorIs(t, m.CreateSession(newSession("two", time.Now())), ErrSessionLimit)

	require.NoError(t, m.DeleteSession("one"))
	assert.NoError(t, m.CreateSession(newSession("two", time.Now())))
}

func TestMemoryStorage_CloseClosesPlayers(t *testing.T) {
	m := NewMemoryStorage(0)
	s := newSession("a", time.Now())
	require.NoError(t, s.Player.Load(nil, []slideshow.Frame{{SVG: "<svg/>", Duration: 1}}))
	require.NoError(t, m.CreateSession(s))

	require.NoError(t, m.Close())

	list, err := m.ListSessions()
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, s.Player.Play(), playback.ErrClosed)
}
