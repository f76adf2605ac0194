package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdock-dev/taskdock/internal/middleware"
	"github.com/taskdock-dev/taskdock/internal/models"
	"github.com/taskdock-dev/taskdock/internal/store"
)

type CreateTodoRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string     `json:"category" binding:"omitempty,oneof=personal work shopping health other"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTodoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string    `json:"category" binding:"omitempty,oneof=personal work shopping health other"`
	DueDate     *time.Time `json:"due_date"`
}

type ListTodosQuery struct {
	Skip      int     `form:"skip,default=0" binding:"omitempty,min=0"`
	Limit     int     `form:"limit,default=100" binding:"omitempty,min=1,max=1000"`
	Category  *string `form:"category" binding:"omitempty,oneof=personal work shopping health other"`
	Priority  *string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Completed *bool   `form:"completed"`
	Search    string  `form:"search"`
}

type TodoResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	Priority    models.Priority `json:"priority"`
	Category    models.Category `json:"category"`
	DueDate     *time.Time      `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at"`
	OwnerID     uint            `json:"owner_id"`
}

func toTodoResponse(todo *models.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		Category:    todo.Category,
		DueDate:     todo.DueDate,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		CompletedAt: todo.CompletedAt,
		OwnerID:     todo.OwnerID,
	}
}

type TodoHandler struct {
	Todos *store.TodoStore
}

// todoID parses the :id segment. An unparsable id behaves like a
// missing one: the caller sees the same 404 either way.
func todoID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func (h *TodoHandler) List(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var query ListTodosQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters"})
		return
	}

	opts := store.ListOptions{
		Skip:      query.Skip,
		Limit:     query.Limit,
		Completed: query.Completed,
		Search:    query.Search,
	}

	if query.Category != nil {
		category := models.Category(*query.Category)
		opts.Category = &category
	}

	if query.Priority != nil {
		priority := models.Priority(*query.Priority)
		opts.Priority = &priority
	}

	todos, err := h.Todos.List(currentUser.ID, opts)

	if err != nil {
		log.Printf("Failed to list todos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]TodoResponse, 0, len(todos))

	for i := range todos {
		response = append(response, toTodoResponse(&todos[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TodoHandler) Create(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTodoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}

	todo, err := h.Todos.Create(currentUser.ID, store.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
		Category:    models.Category(req.Category),
		DueDate:     req.DueDate,
	})

	if err != nil {
		log.Printf("Failed to create todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Get(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := todoID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	todo, err := h.Todos.Get(id, currentUser.ID)

	if err != nil {
		log.Printf("Failed to fetch todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if todo == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Update(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := todoID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	var req UpdateTodoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}

	update := store.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	}

	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		update.Priority = &priority
	}

	if req.Category != nil {
		category := models.Category(*req.Category)
		update.Category = &category
	}

	todo, err := h.Todos.Update(id, currentUser.ID, update)

	if err != nil {
		log.Printf("Failed to update todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if todo == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Delete(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := todoID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	deleted, err := h.Todos.Delete(id, currentUser.ID)

	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func (h *TodoHandler) Stats(ctx *gin.Context) {
	currentUser, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	stats, err := h.Todos.Stats(currentUser.ID)

	if err != nil {
		log.Printf("Failed to compute stats: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
