package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/blogem/boardhook/trello"
)

// BoardService proxies board and card operations to Trello on behalf of a user
type BoardService interface {
	ListBoards(ctx context.Context, cred trello.Credential) (json.RawMessage, error)
	GetBoard(ctx context.Context, cred trello.Credential, boardID string) (json.RawMessage, error)
	GetCard(ctx context.Context, cred trello.Credential, cardID string) (json.RawMessage, error)
	MoveCard(ctx context.Context, cred trello.Credential, cardID, listID string) (json.RawMessage, error)
	AddComment(ctx context.Context, cred trello.Credential, cardID, text string) (json.RawMessage, error)
	AddAttachment(ctx context.Context, cred trello.Credential, cardID string, file *trello.File) (json.RawMessage, error)
}

// boardService implements BoardService
type boardService struct {
	api trello.API
}

// NewBoardService creates a new board service
func NewBoardService(api trello.API) BoardService {
	return &boardService{api: api}
}

func (s *boardService) ListBoards(ctx context.Context, cred trello.Credential) (json.RawMessage, error) {
	return s.api.ListBoards(ctx, cred)
}

// GetBoard returns the board's lists with their open cards
func (s *boardService) GetBoard(ctx context.Context, cred trello.Credential, boardID string) (json.RawMessage, error) {
	if strings.TrimSpace(boardID) == "" {
		return nil, invalidInput("board id is required")
	}
	return s.api.ListBoardContents(ctx, cred, boardID)
}

func (s *boardService) GetCard(ctx context.Context, cred trello.Credential, cardID string) (json.RawMessage, error) {
	if strings.TrimSpace(cardID) == "" {
		return nil, invalidInput("card id is required")
	}
	return s.api.GetCardDetail(ctx, cred, cardID)
}

func (s *boardService) MoveCard(ctx context.Context, cred trello.Credential, cardID, listID string) (json.RawMessage, error) {
	if strings.TrimSpace(listID) == "" {
		return nil, invalidInput("listId is required")
	}
	return s.api.MoveCard(ctx, cred, cardID, listID)
}

func (s *boardService) AddComment(ctx context.Context, cred trello.Credential, cardID, text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidInput("text is required")
	}
	return s.api.AddComment(ctx, cred, cardID, text)
}

func (s *boardService) AddAttachment(ctx context.Context, cred trello.Credential, cardID string, file *trello.File) (json.RawMessage, error) {
	if file == nil {
		return nil, invalidInput("file is required")
	}
	return s.api.AddAttachment(ctx, cred, cardID, *file)
}
