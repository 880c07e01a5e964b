package notes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aitoolbox/ai-toolbox/internal/bridge"
	"github.com/aitoolbox/ai-toolbox/internal/model"
)

// Service handles note commands
type Service struct {
	store Store
}

// NewService creates a note service over the given store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RegisterHandlers binds the note commands to the registry
func (s *Service) RegisterHandlers(registry *bridge.Registry) {
	registry.Register(bridge.CmdListNotes, s.handleListNotes)
	registry.Register(bridge.CmdSaveNote, s.handleSaveNote)
	registry.Register(bridge.CmdDeleteNote, s.handleDeleteNote)
}

func (s *Service) handleListNotes(ctx context.Context, _ json.RawMessage) (any, error) {
	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		// An empty list crosses the bridge as [], not null
		notes = []model.Note{}
	}
	return notes, nil
}

func (s *Service) handleSaveNote(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid save_note arguments: %w", err)
	}

	id, err := s.store.SaveNote(ctx, model.Note{
		ID:    payload.ID,
		Title: payload.Title,
		Body:  payload.Body,
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

func (s *Service) handleDeleteNote(ctx context.Context, args json.RawMessage) (any, error) {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("invalid delete_note arguments: %w", err)
	}
	return nil, s.store.DeleteNote(ctx, payload.ID)
}
