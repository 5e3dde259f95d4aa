package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/boardhook/services"
)

// BoardController proxies board reads to Trello
type BoardController struct {
	authService  services.AuthService
	boardService services.BoardService
}

// NewBoardController creates a new board controller
func NewBoardController(services *services.Services) *BoardController {
	return &BoardController{
		authService:  services.Auth,
		boardService: services.Boards,
	}
}

// Index handles GET /api/boards
func (bc *BoardController) Index(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r, bc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	boards, err := bc.boardService.ListBoards(r.Context(), cred)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// Show handles GET /api/boards/{id}: the board's lists with open cards
func (bc *BoardController) Show(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r, bc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	lists, err := bc.boardService.GetBoard(r.Context(), cred, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}
