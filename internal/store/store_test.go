package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveNote(ctx, model.Note{Title: "First", Body: "body one"})
	require.NoError(t, err)
	require.NotZero(t, id)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
	require.Equal(t, "First", notes[0].Title)
	require.Equal(t, "body one", notes[0].Body)

	// Timestamp is RFC3339
	_, err = time.Parse(time.RFC3339, notes[0].UpdatedAt)
	require.NoError(t, err)
}

func TestStore_ListOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveNote(ctx, model.Note{Title: "older"})
	require.NoError(t, err)
	second, err := s.SaveNote(ctx, model.Note{Title: "newer"})
	require.NoError(t, err)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Same-second saves fall back to id ordering, newest first
	require.Equal(t, second, notes[0].ID)
	require.Equal(t, first, notes[1].ID)
}

func TestStore_UpdateNote(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveNote(ctx, model.Note{Title: "Draft", Body: "v1"})
	require.NoError(t, err)

	updatedID, err := s.SaveNote(ctx, model.Note{ID: id, Title: "Draft", Body: "v2"})
	require.NoError(t, err)
	require.Equal(t, id, updatedID)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "v2", notes[0].Body)
}

func TestStore_UpdateMissingNote(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveNote(context.Background(), model.Note{ID: 999, Title: "ghost"})
	require.ErrorIs(t, err, ErrNoteNotFound)
}

func TestStore_DeleteNote(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveNote(ctx, model.Note{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(ctx, id))

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)

	// Deleting again is not an error
	require.NoError(t, s.DeleteNote(ctx, id))
}

func TestStore_CloseThenReopen(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveNote(ctx, model.Note{Title: "survives"})
	require.NoError(t, err)

	require.NoError(t, s.Close())

	// Operations fail while closed
	_, err = s.ListNotes(ctx)
	require.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.SaveNote(ctx, model.Note{Title: "x"})
	require.ErrorIs(t, err, ErrStoreClosed)
	require.ErrorIs(t, s.DeleteNote(ctx, id), ErrStoreClosed)
	_, err = s.SnapshotTo(ctx, t.TempDir())
	require.ErrorIs(t, err, ErrStoreClosed)

	require.NoError(t, s.Reopen())

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "survives", notes[0].Title)
}

func TestStore_SnapshotTo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SaveNote(ctx, model.Note{Title: "A", Body: "alpha"})
	require.NoError(t, err)
	_, err = s.SaveNote(ctx, model.Note{Title: "B", Body: "beta"})
	require.NoError(t, err)

	snapDir := t.TempDir()
	path, err := s.SnapshotTo(ctx, snapDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(snapDir, DBFileName), path)

	// A store opened on the snapshot sees identical notes
	live, err := s.ListNotes(ctx)
	require.NoError(t, err)

	snap, err := Open(snapDir)
	require.NoError(t, err)
	defer snap.Close()

	copied, err := snap.ListNotes(ctx)
	require.NoError(t, err)
	require.Equal(t, live, copied)
}

func TestStore_SnapshotOverwritesPrevious(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snapDir := t.TempDir()
	_, err := s.SnapshotTo(ctx, snapDir)
	require.NoError(t, err)

	_, err = s.SaveNote(ctx, model.Note{Title: "later"})
	require.NoError(t, err)

	// Second snapshot into the same directory replaces the first
	_, err = s.SnapshotTo(ctx, snapDir)
	require.NoError(t, err)

	snap, err := Open(snapDir)
	require.NoError(t, err)
	defer snap.Close()

	notes, err := snap.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}
