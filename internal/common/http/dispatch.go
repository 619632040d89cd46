package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
)

type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthRequired
	// AuthOptional attaches the principal when the credential verifies and
	// proceeds anonymously otherwise.
	AuthOptional
)

type Phase int

const (
	PhaseReceived Phase = iota
	PhaseAuthenticating
	PhaseValidating
	PhaseExecuting
	PhaseResponded
)

func (p Phase) String() string {
	switch p {
	case PhaseReceived:
		return "received"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseValidating:
		return "validating"
	case PhaseExecuting:
		return "executing"
	case PhaseResponded:
		return "responded"
	default:
		return "unknown"
	}
}

type Authenticator interface {
	Authenticate(header http.Header) (jwtverify.Principal, error)
	OptionalAuthenticate(header http.Header) (jwtverify.Principal, bool)
}

type SchemaValidator interface {
	Validate(schema *validation.Schema, raw validation.Raw) (validation.Input, error)
}

// Request is the per-request pipeline state. It is never shared between
// requests.
type Request struct {
	HTTP          *http.Request
	Principal     jwtverify.Principal
	Authenticated bool
	Input         validation.Input

	phase Phase
}

func (r *Request) Context() context.Context {
	return r.HTTP.Context()
}

func (r *Request) Phase() Phase {
	return r.phase
}

type Result struct {
	Status int
	Data   any
}

func OK(data any) Result {
	return Result{Status: http.StatusOK, Data: data}
}

func Created(data any) Result {
	return Result{Status: http.StatusCreated, Data: data}
}

func NoContent() Result {
	return Result{Status: http.StatusNoContent}
}

type Operation func(ctx context.Context, req *Request) (Result, error)

type Route struct {
	Name   string
	Auth   AuthMode
	Schema *validation.Schema
	Handle Operation
}

type stage func(req *Request) error

type Dispatcher struct {
	gate      Authenticator
	validator SchemaValidator
	errors    *ErrorHandler
	log       *logger.Logger
}

func NewDispatcher(gate Authenticator, validator SchemaValidator, errHandler *ErrorHandler, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		gate:      gate,
		validator: validator,
		errors:    errHandler,
		log:       log,
	}
}

// Handle runs authentication, validation and the operation in that order.
// The first failure short-circuits and is written by the ErrorHandler; a
// panic inside any stage is recovered and handled the same way.
func (d *Dispatcher) Handle(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &Request{HTTP: r, phase: PhaseReceived}

		result, err := d.run(route, req)
		failedAt := req.phase
		req.phase = PhaseResponded

		if err != nil {
			if d.log.ShouldLog(logger.DEBUG) {
				d.log.WithFields(req.Context(), logger.Fields{
					"route": route.Name,
					"phase": failedAt.String(),
				}).Debugf("request short-circuited: %v", err)
			}
			d.errors.HandleError(w, req.HTTP, err)
			return
		}

		status := result.Status
		if status == 0 {
			status = http.StatusOK
		}
		WriteSuccess(w, status, result.Data)
	}
}

func (d *Dispatcher) run(route Route, req *Request) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err = NewPanicError(rec)
		}
	}()

	for _, s := range d.stages(route) {
		if err := s(req); err != nil {
			return Result{}, err
		}
	}

	req.phase = PhaseExecuting
	if route.Handle == nil {
		return Result{}, commonerrors.Internal("route has no operation", nil)
	}
	return route.Handle(req.Context(), req)
}

func (d *Dispatcher) stages(route Route) []stage {
	stages := make([]stage, 0, 2)
	if route.Auth != AuthNone {
		stages = append(stages, d.authenticate(route.Auth))
	}
	if route.Schema != nil {
		stages = append(stages, d.validate(route.Schema))
	}
	return stages
}

func (d *Dispatcher) authenticate(mode AuthMode) stage {
	return func(req *Request) error {
		req.phase = PhaseAuthenticating

		var (
			principal jwtverify.Principal
			ok        bool
		)
		if mode == AuthOptional {
			principal, ok = d.gate.OptionalAuthenticate(req.HTTP.Header)
			if !ok {
				return nil
			}
		} else {
			p, err := d.gate.Authenticate(req.HTTP.Header)
			if err != nil {
				return err
			}
			principal = p
		}

		req.Principal = principal
		req.Authenticated = true
		req.HTTP = req.HTTP.WithContext(jwtverify.WithPrincipal(req.HTTP.Context(), principal))
		return nil
	}
}

func (d *Dispatcher) validate(schema *validation.Schema) stage {
	return func(req *Request) error {
		req.phase = PhaseValidating

		raw := validation.Raw{
			Params: urlParams(req.HTTP),
			Query:  queryParams(req.HTTP),
		}
		if schema.Body != nil {
			body, err := decodeBody(req.HTTP)
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return commonerrors.PayloadTooLarge("Request body too large").WithCause(err)
			}
			raw.Body = body
			raw.BodyErr = err
		}

		input, err := d.validator.Validate(schema, raw)
		if err != nil {
			return err
		}
		req.Input = input
		return nil
	}
}

func decodeBody(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON body")
	}
	return body, nil
}

func urlParams(r *http.Request) map[string]string {
	out := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return out
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		out[key] = rctx.URLParams.Values[i]
	}
	return out
}

func queryParams(r *http.Request) map[string]string {
	out := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
