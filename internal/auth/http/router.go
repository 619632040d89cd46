package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/task-manager/internal/auth/service"
	"github.com/AlibekovAA/task-manager/internal/common/dto"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/mapper"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type Handler struct {
	auth *service.AuthService
}

// NewHandler serves /v1/auth. limit, when set, guards signup and login.
func NewHandler(auth *service.AuthService, dispatcher *commonhttp.Dispatcher, limit func(http.Handler) http.Handler) http.Handler {
	h := &Handler{auth: auth}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Method(http.MethodPost, "/signup", dispatcher.Handle(commonhttp.Route{
			Name:   "auth.signup",
			Schema: signupSchema,
			Handle: h.signup,
		}))
		r.Method(http.MethodPost, "/login", dispatcher.Handle(commonhttp.Route{
			Name:   "auth.login",
			Schema: loginSchema,
			Handle: h.login,
		}))
	})
	r.Method(http.MethodGet, "/me", dispatcher.Handle(commonhttp.Route{
		Name:   "auth.me",
		Auth:   commonhttp.AuthRequired,
		Handle: h.me,
	}))

	return r
}

func authResult(result service.AuthResult) dto.AuthResult {
	return dto.AuthResult{
		User:  mapper.UserToDTO(result.User),
		Token: result.Token,
	}
}

func (h *Handler) signup(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	result, err := h.auth.Signup(ctx, service.SignupInput{
		Username: req.Input.Body.String("username"),
		Password: req.Input.Body.String("password"),
	})
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.Created(authResult(result)), nil
}

func (h *Handler) login(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	result, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Input.Body.String("username"),
		Password: req.Input.Body.String("password"),
	})
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.OK(authResult(result)), nil
}

func (h *Handler) me(ctx context.Context, req *commonhttp.Request) (commonhttp.Result, error) {
	user, err := h.auth.Me(ctx, userdomain.ID(req.Principal.UserID))
	if err != nil {
		return commonhttp.Result{}, err
	}
	return commonhttp.OK(mapper.UserToDTO(user)), nil
}
