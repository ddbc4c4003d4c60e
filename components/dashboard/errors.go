package dashboard

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to dashboard errors.
const (
	TextCodeWidgetNotFound  = "WIDGET_NOT_FOUND"
	TextCodeInvalidDocument = "INVALID_DATA_DOCUMENT"
	TextCodeRenderFailed    = "RENDER_FAILED"
)

// ErrWidgetNotFound reports an unknown widget code.
func ErrWidgetNotFound(code string) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("dashboard: widget %s not found", code), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeWidgetNotFound).
		WithMetadata(map[string]any{"code": code})
}

func errInvalidDocument(err error, message string) *goerrors.Error {
	if err == nil {
		return nil
	}
	var out *goerrors.Error
	if goerrors.As(err, &out) && out.Category == goerrors.CategoryValidation {
		out = out.Clone()
		out.Message = message
	} else {
		out = goerrors.Wrap(err, goerrors.CategoryValidation, message)
	}
	return out.WithCode(http.StatusBadRequest).WithTextCode(TextCodeInvalidDocument)
}

func errRender(err error, code string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("dashboard: render widget %s", code)).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeRenderFailed).
		WithMetadata(map[string]any{"code": code})
}
