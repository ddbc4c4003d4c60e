package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// ErrorHandler renders every error as a go-errors ErrorResponse envelope.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := Envelope(err, requestID(c))
		if status >= http.StatusInternalServerError {
			logger.Error("dashboard request failed", "path", c.Path(), "request_id", body.Error.RequestID, "error", err)
		}
		return c.Status(status).JSON(body)
	}
}

// Envelope maps err to an HTTP status and the go-errors response body.
func Envelope(err error, requestID string) (int, goerrors.ErrorResponse) {
	mapped := goerrors.MapToError(err, []goerrors.ErrorMapper{mapFiberError})
	status := statusFor(mapped)
	mapped = mapped.Clone()
	mapped.Code = status
	if requestID != "" {
		mapped = mapped.WithRequestID(requestID)
	}
	return status, mapped.ToErrorResponse(false, nil)
}

func mapFiberError(err error) *goerrors.Error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return nil
	}
	category := goerrors.CategoryInternal
	switch {
	case fe.Code == http.StatusNotFound:
		category = goerrors.CategoryNotFound
	case fe.Code >= 400 && fe.Code < 500:
		category = goerrors.CategoryBadInput
	}
	return goerrors.New(fe.Message, category).WithCode(fe.Code)
}

func statusFor(err *goerrors.Error) int {
	switch {
	case err.Category == goerrors.CategoryValidation, err.Category == goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case err.Category == goerrors.CategoryNotFound:
		return http.StatusNotFound
	case err.Code >= 400 && err.Code < 600:
		return err.Code
	}
	return http.StatusInternalServerError
}
