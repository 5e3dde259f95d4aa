package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/trello"
)

// CardController proxies card reads and edits to Trello
type CardController struct {
	authService    services.AuthService
	boardService   services.BoardService
	maxUploadBytes int64
}

// NewCardController creates a new card controller
func NewCardController(services *services.Services, maxUploadBytes int64) *CardController {
	return &CardController{
		authService:    services.Auth,
		boardService:   services.Boards,
		maxUploadBytes: maxUploadBytes,
	}
}

// Show handles GET /api/cards/{id}
func (cc *CardController) Show(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r, cc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	card, err := cc.boardService.GetCard(r.Context(), cred, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Move handles PUT /api/cards/{id}/move
func (cc *CardController) Move(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ListID string `json:"listId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cred, err := credential(r, cc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	card, err := cc.boardService.MoveCard(r.Context(), cred, chi.URLParam(r, "id"), body.ListID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Comment handles POST /api/cards/{id}/comments
func (cc *CardController) Comment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cred, err := credential(r, cc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	comment, err := cc.boardService.AddComment(r.Context(), cred, chi.URLParam(r, "id"), body.Text)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Attach handles POST /api/cards/{id}/attachments with a multipart "file" field
func (cc *CardController) Attach(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r, cc.authService)
	if err != nil {
		handleError(w, err)
		return
	}

	file, err := cc.readUpload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		handleError(w, err)
		return
	}

	attachment, err := cc.boardService.AddAttachment(r.Context(), cred, chi.URLParam(r, "id"), file)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachment)
}

// readUpload returns the uploaded file, or nil when the form carries none
func (cc *CardController) readUpload(w http.ResponseWriter, r *http.Request) (*trello.File, error) {
	if cc.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cc.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		// not a multipart body at all
		return nil, nil
	}

	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}

	return &trello.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
