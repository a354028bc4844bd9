package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

// bind decodes the body and runs the struct validator. Decoding failures
// become errInvalidBody.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	return c.Validate(req)
}

func (s *HTTPServer) register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Registered", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, newAuthResponse(res))
}

func (s *HTTPServer) login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newAuthResponse(res))
}

func (s *HTTPServer) me(c echo.Context) error {
	user, err := s.users.GetSelf(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *HTTPServer) updatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := s.users.UpdatePassword(c.Request().Context(), currentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Msg: common.MsgPasswordUpdated})
}

func (s *HTTPServer) listTasks(c echo.Context) error {
	list, err := s.tasks.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, newTaskResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) createTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.Create(c.Request().Context(), currentUserID(c), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) updateTask(c echo.Context) error {
	var req UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := s.tasks.Update(c.Request().Context(), c.Param("id"), currentUserID(c), req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	if err := s.tasks.Delete(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: common.MsgTaskRemoved})
}
