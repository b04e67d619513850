package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/logging/logger"
	"github.com/notevault/notevault/middleware"
	"github.com/notevault/notevault/net/resp"
	"github.com/notevault/notevault/service"
)

type createNoteBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type updateNoteBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// NoteHandler exposes the note endpoints. All of them sit behind the auth
// middleware.
type NoteHandler struct {
	notes  *service.NoteService
	logger *logger.Logger
}

// NewNoteHandler creates a note handler.
func NewNoteHandler(notes *service.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: log}
}

// Create stores a new note owned by the caller.
func (h *NoteHandler) Create(c *gin.Context) {
	var body createNoteBody
	if ex := bindJSON(c, &body); ex != nil {
		resp.Fail(c.Writer, ex)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), middleware.GetCurrentAccountID(c), &service.CreateNoteInput{
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, gin.H{
		"message": "note created successfully",
		"note":    note,
	})
}

// List returns all notes owned by the caller.
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), middleware.GetCurrentAccountID(c))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	resp.Success(c.Writer, gin.H{
		"message": "notes fetched successfully",
		"notes":   notes,
	})
}

// Get returns a single note owned by the caller.
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), middleware.GetCurrentAccountID(c), c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	resp.Success(c.Writer, gin.H{
		"success": true,
		"note":    note,
	})
}

// Update applies a partial update to a note owned by the caller.
func (h *NoteHandler) Update(c *gin.Context) {
	var body updateNoteBody
	if ex := bindJSON(c, &body); ex != nil {
		resp.Fail(c.Writer, ex)
		return
	}

	note, err := h.notes.Update(c.Request.Context(), middleware.GetCurrentAccountID(c), c.Param("id"), &service.UpdateNoteInput{
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	resp.Success(c.Writer, gin.H{
		"success": true,
		"message": "note updated successfully",
		"note":    note,
	})
}

// Delete removes a note owned by the caller.
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), middleware.GetCurrentAccountID(c), c.Param("id")); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	resp.Success(c.Writer, gin.H{
		"success": true,
		"message": "note deleted successfully",
	})
}
