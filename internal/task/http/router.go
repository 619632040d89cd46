package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/mapper"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	"github.com/AlibekovAA/task-manager/internal/task/service"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type Handler struct {
	tasks *service.TaskService
}

// NewHandler serves /v1/tasks. Every route requires a bearer token.
func NewHandler(tasks *service.TaskService, dispatcher *commonhttp.Dispatcher) http.Handler {
	h := &Handler{tasks: tasks}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", dispatcher.Handle(commonhttp.Route{
		Name:   "tasks.list",
		Auth:   commonhttp.AuthRequired,
		Handle: h.list,
	}))
	r.Method(http.MethodPost, "/", dispatcher.Handle(commonhttp.Route{
		Name:   "tasks.create",
		Auth:   commonhttp.AuthRequired,
		Schema: createTaskSchema,
		Handle: h.create,
	}))
	r.Method(http.MethodGet, "/{id}", dispatcher.Handle(commonhttp.Route{
		Name:   "tasks.get",
		Auth:   commonhttp.AuthRequired,
		Schema: taskIDSchema,
		Handle: h.get,
	}))

	update := dispatcher.Handle(commonhttp.Route{
		Name:   "tasks.update",
		Auth:   commonhttp.AuthRequired,
		Schema: updateTaskSchema,
		Handle: h.update,
	})
	r.Method(http.MethodPut, "/{id}", update)
	r.Method(http.MethodPatch, "/{id}", update)

	r.Method(http.MethodDelete, "/{id}", dispatcher.Handle(commonhttp.Route{
		Name:   "tasks.delete",
		Auth:   commonhttp.AuthRequired,
		Schema: taskIDSchema,
		Handle: h.delete,
	}))

	return r
}

func owner(req *commonhttp.Request) userdomain.ID {
	return userdomain.ID(req.Principal.UserID)
}

func taskID(req *commonhttp.Request) domain.ID {
	return domain.ID(req.Input.Params.Int("id"))
}

func (h *Handler) list(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	tasks, err := h.tasks.FindAll(ctx, owner(req))
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.OK(mapper.TasksToDTO(tasks)), nil
}

func (h *Handler) get(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	task, err := h.tasks.FindByID(ctx, taskID(req), owner(req))
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.OK(mapper.TaskToDTO(task)), nil
}

func (h *Handler) create(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	body := req.Input.Body
	description, _ := body.StringPtr("description")

	task, err := h.tasks.Create(ctx, owner(req), domain.CreateFields{
		Title:       body.String("title"),
		Description: description,
	})
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.Created(mapper.TaskToDTO(task)), nil
}

func (h *Handler) update(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	task, err := h.tasks.Update(ctx, taskID(req), owner(req), updateFields(req))
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.OK(mapper.TaskToDTO(task)), nil
}

func (h *Handler) delete(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	if err := h.tasks.Delete(ctx, taskID(req), owner(req)); err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.NoContent(), nil
}

func updateFields(req *commonhttp.Request) domain.UpdateFields {
	body := req.Input.Body
	var fields domain.UpdateFields

	if body.Has("title") {
		title := body.String("title")
		fields.Title = &title
	}
	if description, present := body.StringPtr("description"); present {
		if description == nil {
			fields.ClearDescription = true
		} else {
			fields.Description = description
		}
	}
	if completed, ok := body.Bool("completed"); ok {
		fields.Completed = &completed
	}
	return fields
}
