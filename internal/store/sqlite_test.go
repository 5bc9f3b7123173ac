package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAlertThenList(t *testing.T) {
	s := newTestStore(t)

	before := time.Now().Unix()
	a := model.Alert{CH4L: 1.5, CH4R: 2.25, P: 3, RsL: 4.75, RsR: 5, LeakRate: 6.5}
	id, err := s.InsertAlert(&a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.GreaterOrEqual(t, a.Timestamp, before)

	alerts, err := s.ListAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, a, alerts[0])
}

func TestListAlertsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		a := model.Alert{CH4L: float64(i), LeakRate: float64(i) * 0.5}
		id, err := s.InsertAlert(&a)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	alerts, err := s.ListAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 5)
	// Same-second inserts still come back newest append first
	for i, a := range alerts {
		assert.Equal(t, ids[len(ids)-1-i], a.ID)
	}
}

func TestClearAlerts(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.InsertAlert(&model.Alert{CH4L: float64(i)})
		require.NoError(t, err)
	}

	deleted, err := s.ClearAlerts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	alerts, err := s.ListAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)

	// Clearing an empty table is fine
	deleted, err = s.ClearAlerts()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCountAlerts(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CountAlerts()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.InsertAlert(&model.Alert{})
	require.NoError(t, err)

	n, err = s.CountAlerts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "alerts.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	_, err = s.InsertAlert(&model.Alert{CH4L: 7})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Second open runs migrations again against the same file
	s, err = New(dbPath)
	require.NoError(t, err)
	defer s.Close()

	alerts, err := s.ListAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 7.0, alerts[0].CH4L)
}
