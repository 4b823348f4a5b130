package mockapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler serves the todo REST contract over a Repository.
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger discards request logs.
func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{repo: repo, logger: logger}
}

// NewRouter builds a gin engine with CORS, request ids and all todo routes.
func NewRouter(repo Repository, logger *slog.Logger) *gin.Engine {
	h := NewHandler(repo, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(requestID(h.logger))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)

	todos := r.Group("/todo")
	todos.GET("", h.list)
	todos.POST("", h.create)
	todos.GET("/:id", h.get)
	todos.PUT("/:id", h.update)
	todos.DELETE("/:id", h.delete)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

func (h *Handler) list(c *gin.Context) {
	todos, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.repo.Get(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) create(c *gin.Context) {
	var body domain.NewTodo
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, "Invalid JSON")
		return
	}
	t, err := h.repo.Create(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) update(c *gin.Context) {
	var patch domain.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, "Invalid JSON")
		return
	}
	t, err := h.repo.Update(c.Request.Context(), domain.ID(c.Param("id")), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) delete(c *gin.Context) {
	id := domain.ID(c.Param("id"))
	t, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, "Not found")
		return
	}
	h.logger.ErrorContext(c.Request.Context(), "mock_store_error",
		"request_id", RequestID(c.Request.Context()),
		"error", err.Error(),
	)
	c.JSON(http.StatusInternalServerError, "Internal error")
}
