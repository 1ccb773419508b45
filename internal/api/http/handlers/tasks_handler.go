package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/export"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

const icsContentType = "text/calendar; charset=utf-8"

// TasksHandler manages tasks, the kanban board and the task calendar.
type TasksHandler struct {
	service   *service.TaskService
	companies *service.CompanyService
	now       func() time.Time
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService, companyService *service.CompanyService) *TasksHandler {
	return &TasksHandler{service: taskService, companies: companyService, now: time.Now}
}

func (h *TasksHandler) toResponse(t domain.Task) dto.TaskResponse {
	return taskResponse(t, h.now)
}

// List GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, h.toResponse)})
}

// Board GET /tasks/board.
func (h *TasksHandler) Board(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	columns, err := h.service.Board(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	out := make([]dto.BoardColumnResponse, 0, len(columns))
	for _, col := range columns {
		tasks := make([]dto.TaskResponse, 0, len(col.Tasks))
		for _, t := range col.Tasks {
			tasks = append(tasks, h.toResponse(t))
		}
		out = append(out, dto.BoardColumnResponse{Status: col.Status, Count: len(tasks), Tasks: tasks})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Calendar GET /tasks/calendar.ics.
func (h *TasksHandler) Calendar(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.All(c.UserContext(), actor)
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), actor)
	if err != nil {
		return err
	}
	body := export.TasksICS(company.Name, tasks, h.now())
	return sendAttachment(c, icsContentType, "tasks.ics", []byte(body))
}

// Get GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	task, err := h.service.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.toResponse(*task)})
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := taskInput(c)
	if err != nil {
		return err
	}
	task, err := h.service.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.toResponse(*task)})
}

// Update PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := taskInput(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	task, err := h.service.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.toResponse(*task)})
}

// UpdateStatus PATCH /tasks/:id.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.TaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	task, err := h.service.UpdateStatus(c.UserContext(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.toResponse(*task)})
}

// Delete DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddSubtask POST /tasks/:id/subtasks.
func (h *TasksHandler) AddSubtask(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.SubtaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	sub, err := h.service.AddSubtask(c.UserContext(), actor, id, service.SubtaskInput{
		Title:      req.Title,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": subtaskResponse(*sub)})
}

// UpdateSubtaskStatus PATCH /tasks/:id/subtasks/:subtaskId.
func (h *TasksHandler) UpdateSubtaskStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.TaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "task")
	if err != nil {
		return err
	}
	subtaskID, err := pathID(c, "subtaskId", "subtask")
	if err != nil {
		return err
	}
	task, err := h.service.UpdateSubtaskStatus(c.UserContext(), actor, id, subtaskID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.toResponse(*task)})
}

func taskInput(c *fiber.Ctx) (service.TaskInput, error) {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return service.TaskInput{}, err
	}
	due, err := dto.ParseDate("due_date", req.DueDate)
	if err != nil {
		return service.TaskInput{}, err
	}
	return service.TaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		AssigneeID:   emptyToNil(req.AssigneeID),
		Priority:     req.Priority,
		DueDate:      due,
		Status:       req.Status,
	}, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
