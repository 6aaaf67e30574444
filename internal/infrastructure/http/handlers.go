package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
	"github.com/0xcro3dile/chatassist/internal/domain/ports"
)

type modelSelection struct {
	ModelName *string `json:"model_name" binding:"required"`
}

// chatMessage is the body of /chat and /compare. Compare ignores Model.
type chatMessage struct {
	UserID  *string `json:"user_id" binding:"required"`
	Message *string `json:"message" binding:"required"`
	Model   string  `json:"model"`
}

type chatResponse struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback,omitempty"`
}

type compareResponse struct {
	ModelAResponse string `json:"model_a_response"`
	ModelBResponse string `json:"model_b_response"`
	ModelAFallback bool   `json:"model_a_fallback,omitempty"`
	ModelBFallback bool   `json:"model_b_fallback,omitempty"`
}

type historyResponse struct {
	UserID string          `json:"user_id"`
	Turns  []entities.Turn `json:"turns"`
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// handleIndex serves the front-end page verbatim.
func (s *Server) handleIndex(c *gin.Context) {
	page := indexHTML
	if s.opts.IndexPath != "" {
		data, err := os.ReadFile(s.opts.IndexPath)
		if err != nil {
			log.Printf("[ERROR] Reading index page: %v", err)
			detail(c, http.StatusInternalServerError, "Index page not available")
			return
		}
		page = data
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleSetModel selects the process-wide current model.
// POST /set_model
func (s *Server) handleSetModel(c *gin.Context) {
	var req modelSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request: "+err.Error())
		return
	}

	model, err := s.chat.SetModel(*req.ModelName)
	if errors.Is(err, entities.ErrInvalidModel) {
		detail(c, http.StatusBadRequest, "Model not available")
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "model": model})
}

// handleUploadFiles stores the multipart "files" list in the upload directory.
// POST /upload_files
func (s *Server) handleUploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid multipart form: "+err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		detail(c, http.StatusUnprocessableEntity, "No files provided")
		return
	}

	files := make([]ports.UploadFile, len(headers))
	for i, fh := range headers {
		files[i] = ports.UploadFile{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	saved, err := s.chat.Upload(c.Request.Context(), files)
	if err != nil {
		log.Printf("[ERROR] Upload: %v", err)
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploaded_files": saved})
}

// handleChat answers one message with the selected (or requested) model.
// POST /chat
func (s *Server) handleChat(c *gin.Context) {
	var req chatMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request: "+err.Error())
		return
	}

	gen, err := s.chat.Chat(c.Request.Context(), *req.UserID, *req.Message, req.Model)
	if err != nil {
		s.generationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, chatResponse{Response: gen.Text, Fallback: gen.IsFallback()})
}

// handleCompare answers one message with both compare models.
// POST /compare
func (s *Server) handleCompare(c *gin.Context) {
	var req chatMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request: "+err.Error())
		return
	}

	cmp, err := s.chat.Compare(c.Request.Context(), *req.UserID, *req.Message)
	if err != nil {
		s.generationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		ModelAResponse: cmp.A.Text,
		ModelBResponse: cmp.B.Text,
		ModelAFallback: cmp.A.IsFallback(),
		ModelBFallback: cmp.B.IsFallback(),
	})
}

func (s *Server) generationFailed(c *gin.Context, err error) {
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	var genErr *entities.GenerationError
	if errors.As(err, &genErr) {
		detail(c, http.StatusInternalServerError, "LLM generation failed: "+genErr.Err.Error())
		return
	}
	detail(c, http.StatusInternalServerError, err.Error())
}

// handleHealth returns server health status.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleModels lists the allowed models and the current selection.
func (s *Server) handleModels(c *gin.Context) {
	available, current := s.chat.Models()
	c.JSON(http.StatusOK, gin.H{"available": available, "current": current})
}

// handleHistory returns one user's conversation.
func (s *Server) handleHistory(c *gin.Context) {
	userID, ok := c.GetQuery("user_id")
	if !ok {
		detail(c, http.StatusUnprocessableEntity, "user_id is required")
		return
	}

	turns, err := s.chat.History(c.Request.Context(), userID)
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, historyResponse{UserID: userID, Turns: turns})
}

// handleFiles lists uploaded documents.
func (s *Server) handleFiles(c *gin.Context) {
	names, err := s.chat.Documents(c.Request.Context())
	if err != nil {
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": names})
}
