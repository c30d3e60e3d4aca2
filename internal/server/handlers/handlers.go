// Package handlers exposes the backend's HTTP surface.
//
// Error responses use a single envelope: {"error": {"code", "message"}}.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server/orders"
	"github.com/dmitrijs2005/printdraft/internal/server/storage"
)

// maxUploadBytes bounds a single uploaded object.
const maxUploadBytes = 256 << 20

type Handlers struct {
	orders  *orders.Service
	storage storage.Storage
	log     logging.Logger
}

func New(svc *orders.Service, st storage.Storage, log logging.Logger) *Handlers {
	return &Handlers{orders: svc, storage: st, log: log}
}

// SetupRoutes registers all routes on r.
//
// The /uploads endpoints only matter for the in-memory storage backend,
// whose upload and fetch URLs point back at this server. With the S3
// backend clients talk to the object store directly and never hit them.
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/orders/:orderID/files", h.RegisterFile)
	r.DELETE("/orders/:orderID/files/:fileID", h.DeleteFile)
	r.GET("/orders/:orderID/files/:fileID/thumbnail", h.Thumbnail)
	r.GET("/opts/papers", h.Papers)

	r.PUT("/uploads/*key", h.Upload)
	r.GET("/uploads/*key", h.Download)
}

type registerRequest struct {
	Filename string `json:"filename" binding:"required"`
	Filetype string `json:"filetype" binding:"required"`
	Filesize int64  `json:"filesize" binding:"required,gt=0"`
}

type registerResponse struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadUrl"`
}

func (h *Handlers) RegisterFile(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	f, uploadURL, err := h.orders.Register(c.Request.Context(), c.Param("orderID"), req.Filename, req.Filetype, req.Filesize)
	if err != nil {
		h.error(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	c.JSON(http.StatusCreated, registerResponse{ID: f.ID, UploadURL: uploadURL})
}

func (h *Handlers) DeleteFile(c *gin.Context) {
	err := h.orders.Delete(c.Request.Context(), c.Param("orderID"), c.Param("fileID"))
	if errors.Is(err, orders.ErrNotFound) {
		h.error(c, http.StatusNotFound, "not_found", "no such file")
		return
	}
	if err != nil {
		h.error(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) Thumbnail(c *gin.Context) {
	ref, done, err := h.orders.Thumbnail(c.Request.Context(), c.Param("orderID"), c.Param("fileID"))
	if errors.Is(err, orders.ErrNotFound) {
		h.error(c, http.StatusNotFound, "not_found", "no such file")
		return
	}
	if err != nil {
		h.error(c, http.StatusInternalServerError, "thumbnail_error", err.Error())
		return
	}
	if !done {
		c.Status(http.StatusAccepted)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ref})
}

func (h *Handlers) Papers(c *gin.Context) {
	c.JSON(http.StatusOK, orders.Papers())
}

func (h *Handlers) Upload(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
	if err != nil {
		h.error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.storage.Put(c.Request.Context(), key, data); err != nil {
		h.error(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handlers) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	data, err := h.storage.Get(c.Request.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		h.error(c, http.StatusNotFound, "not_found", "no such object")
		return
	}
	if err != nil {
		h.error(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func (h *Handlers) error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
