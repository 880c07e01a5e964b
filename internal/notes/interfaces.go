package notes

import (
	"context"

	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// Store is the persistence surface the note commands need
type Store interface {
	SaveNote(ctx context.Context, note model.Note) (int64, error)
	ListNotes(ctx context.Context) ([]model.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}
