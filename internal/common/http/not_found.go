package http

import (
	"fmt"
	"net/http"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

func NotFoundHandler(errHandler *ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errHandler.HandleError(w, r, commonerrors.NewDomainError(
			"ROUTE_NOT_FOUND",
			commonerrors.CategoryNotFound,
			http.StatusNotFound,
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.RequestURI()),
		))
	}
}

func MethodNotAllowedHandler(errHandler *ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errHandler.HandleError(w, r, commonerrors.NewDomainError(
			"METHOD_NOT_ALLOWED",
			commonerrors.CategoryValidation,
			http.StatusMethodNotAllowed,
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path),
		))
	}
}
