package apperror

import (
	"errors"
	"fmt"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// FormatCode renders a code the way clients see it, e.g. TM-4001.
func FormatCode(code status.ErrorCode) string {
	return fmt.Sprintf("TM-%d", code)
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"url":           c.OriginalURL(),
		"ip":            c.IP(),
		"request_id":    c.Get(fiber.HeaderXRequestID),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// Write renders err according to its kind. Internal causes are logged, not returned to the client.
func Write(module config.Module, c fiber.Ctx, err error) error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = &Error{Kind: KindInternal, Code: status.Internal, Message: "internal server error", Err: err}
	}
	message := appErr.Message
	if appErr.Kind == KindInternal {
		logger.Error(err, "%v: request failed", module)
		message = "internal server error"
	}
	return WriteError(module, c, HTTPStatus(appErr.Kind), FormatCode(appErr.Code), message)
}

// Shorthands for common error responses
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, FormatCode(code), message)
}

func NotFound(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusNotFound, FormatCode(code), message)
}

// InternalError logs err and returns a generic 500 body
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	logger.Error(err, "%v: internal error", module)
	return WriteError(module, c, fiber.StatusInternalServerError, FormatCode(status.Internal), "internal server error")
}

// ErrorHandler is installed as fiber's app-level handler for errors no route handled,
// such as unknown paths, wrong methods and oversized bodies.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := status.InvalidRequestBody
		switch {
		case fe.Code == fiber.StatusNotFound:
			code = status.RouteNotFound
		case fe.Code == fiber.StatusServiceUnavailable:
			code = status.ServerBusy
		case fe.Code >= fiber.StatusInternalServerError:
			code = status.Internal
		}
		return WriteError(config.ModuleServer, c, fe.Code, FormatCode(code), fe.Message)
	}
	return Write(config.ModuleServer, c, err)
}
