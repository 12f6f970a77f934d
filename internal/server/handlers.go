package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

const maxBodySize = 1 << 20 // 1MB

type statusBody struct {
	Status model.Status `json:"status"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleList(c *gin.Context) {
	items, err := s.store.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleCreate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var in model.NewTodo
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		badRequest(c, "title and content are required")
		return
	}
	if in.Status != "" && !in.Status.Valid() {
		badRequest(c, "invalid status")
		return
	}
	cats := make([]string, 0, len(in.Category))
	for _, cat := range in.Category {
		if cat = strings.TrimSpace(cat); cat != "" {
			cats = append(cats, cat)
		}
	}
	in.Category = cats

	td, err := s.store.Create(c.Request.Context(), in)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, td)
}

func (s *Server) handleUpdate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if !body.Status.Valid() {
		badRequest(c, "invalid status")
		return
	}
	td, err := s.store.Update(c.Request.Context(), model.StatusUpdate{ID: c.Param("id"), Status: body.Status})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c)
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, td)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c)
			return
		}
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.log.Error("store call failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
