package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-results-backend/internal/middleware"
	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ResultHandler handles lottery result HTTP requests
type ResultHandler struct {
	extraction     *services.ExtractionService
	results        *services.ResultService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewResultHandler creates a new ResultHandler. maxUploadBytes caps the
// size of an uploaded text file.
func NewResultHandler(extraction *services.ExtractionService, results *services.ResultService, logger *slog.Logger, maxUploadBytes int64) *ResultHandler {
	return &ResultHandler{
		extraction:     extraction,
		results:        results,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Extract handles POST /results/extract. The text comes either as JSON
// {"text": ...} or as a multipart "file" holding plain text. The parsed
// result is returned for review and not stored.
func (h *ResultHandler) Extract(c *gin.Context) {
	var text string
	if c.ContentType() == "multipart/form-data" {
		var err error
		if text, err = h.readUpload(c); err != nil {
			return
		}
	} else {
		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = req.Text
	}

	result, err := h.extraction.Extract(c.Request.Context(), text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readUpload reads the "file" form field. On failure it has already written
// the response.
func (h *ResultHandler) readUpload(c *gin.Context) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return "", err
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes)})
		return "", errors.New("upload too large")
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, h.logger, err)
		return "", err
	}
	if !utf8.Valid(data) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file must be UTF-8 plain text"})
		return "", errors.New("upload is not text")
	}
	return string(data), nil
}

// Create handles POST /results
func (h *ResultHandler) Create(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.results.Create(c.Request.Context(), &req, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List handles GET /results?page=&limit=, or GET /results?drawNumber= for a
// single draw.
func (h *ResultHandler) List(c *gin.Context) {
	if drawNumber := c.Query("drawNumber"); drawNumber != "" {
		result, err := h.results.GetByDrawNumber(c.Request.Context(), drawNumber)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.results.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetLatest handles GET /results/latest
func (h *ResultHandler) GetLatest(c *gin.Context) {
	result, err := h.results.GetLatest(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /results/:id
func (h *ResultHandler) GetByID(c *gin.Context) {
	result, err := h.results.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update handles PUT /results/:id
func (h *ResultHandler) Update(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.results.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /results/:id
func (h *ResultHandler) Delete(c *gin.Context) {
	if err := h.results.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckTicket handles POST /results/:id/check. A malformed ticket answers
// 400 with the validation details.
func (h *ResultHandler) CheckTicket(c *gin.Context) {
	var req models.CheckTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.results.CheckTicket(c.Request.Context(), c.Param("id"), req.Ticket)
	if errors.Is(err, services.ErrInvalidTicket) {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles GET /results/:id/export
func (h *ResultHandler) Export(c *gin.Context) {
	data, name, err := h.results.ExportXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
