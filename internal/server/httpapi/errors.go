package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

// errInvalidBody is returned when the request body cannot be decoded.
var errInvalidBody = errors.New("invalid request body")

// handleError is the single place where errors become HTTP responses.
// Unexpected errors are logged and answered with a generic message.
func (s *HTTPServer) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.errorResponse(c, err)

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(status)
	} else {
		respErr = c.JSON(status, body)
	}
	if respErr != nil {
		s.logger.Error(c.Request().Context(), "writing error response", "error", respErr)
	}
}

func (s *HTTPServer) errorResponse(c echo.Context, err error) (int, any) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		out := ValidationErrorResponse{Errors: make([]FieldErrorResponse, 0, len(verr.Fields))}
		for _, f := range verr.Fields {
			out.Errors = append(out.Errors, FieldErrorResponse{
				Type:     "field",
				Msg:      f.Message,
				Path:     f.Field,
				Location: f.Location,
			})
		}
		return http.StatusBadRequest, out
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, MessageResponse{Msg: common.MsgInvalidBody}
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, MessageResponse{Msg: common.MsgUserExists}
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, MessageResponse{Msg: common.MsgInvalidCredentials}
	case errors.Is(err, common.ErrorIncorrectPassword):
		return http.StatusBadRequest, MessageResponse{Msg: common.MsgIncorrectPassword}
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, MessageResponse{Msg: common.MsgTokenInvalid}
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusUnauthorized, MessageResponse{Msg: common.MsgNotAuthorized}
	case errors.Is(err, common.ErrorNotFound):
		if strings.HasPrefix(c.Path(), apiRoot+"/tasks") {
			return http.StatusNotFound, MessageResponse{Msg: common.MsgTaskNotFound}
		}
		return http.StatusNotFound, MessageResponse{Msg: common.MsgUserNotFound}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, MessageResponse{Msg: fmt.Sprint(he.Message)}
	}

	s.logger.Error(c.Request().Context(), "request failed",
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return http.StatusInternalServerError, MessageResponse{Msg: common.MsgServerError}
}
