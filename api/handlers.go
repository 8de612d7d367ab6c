package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasks-api/domain"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, version string, logger *log.Logger) {
	e.GET("/", home())
	e.GET("/health", health(version))
	e.GET("/api/tasks", listTasks(store, logger))
	e.POST("/api/tasks", createTask(store))
	e.GET("/api/tasks/:id", getTask(store))
	e.PUT("/api/tasks/:id", updateTask(store))
	e.DELETE("/api/tasks/:id", deleteTask(store))
}

func home() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, messageResponse{Message: "Welcome to the Task Management API!"})
	}
}

func health(version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "UP", Version: version})
	}
}

func listTasks(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger)
		c.SetRequest(c.Request().WithContext(spanCtx))
		ctx = spanCtx
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.ListTasks(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.JSON(http.StatusInternalServerError, errorResponse{Error: fetchErr.Error()})
			return err
		}
		metrics.SetTasksReturned(len(tasks))
		if tasks == nil {
			tasks = []domain.Task{}
		}

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasks)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := taskID(c)
		if !ok {
			return taskNotFound(c)
		}
		task, err := store.GetTask(c.Request().Context(), id)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		if task == nil {
			return taskNotFound(c)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func createTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTaskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		if req.Title == nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "title is required"})
		}
		completed := false
		if req.Completed != nil {
			completed = *req.Completed
		}

		task, err := store.CreateTask(c.Request().Context(), *req.Title, completed)
		if err != nil {
			var verr domain.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error()})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func updateTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := taskID(c)
		if !ok {
			return taskNotFound(c)
		}
		var upd domain.TaskUpdate
		if err := decodeBody(c, &upd); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}

		task, err := store.UpdateTask(c.Request().Context(), id, upd)
		if err != nil {
			var verr domain.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error()})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		if task == nil {
			return taskNotFound(c)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := taskID(c)
		if !ok {
			return taskNotFound(c)
		}
		deleted, err := store.DeleteTask(c.Request().Context(), id)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		if !deleted {
			return taskNotFound(c)
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
	}
}

// taskID parses the :id route parameter. Non-integer and non-positive values
// are treated the same as an unknown task.
func taskID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func taskNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
}

// decodeBody decodes a JSON request body into dst. Unknown fields are
// ignored so clients sending extra keys (including an id) are tolerated.
func decodeBody(c echo.Context, dst any) error {
	lr := io.LimitReader(c.Request().Body, taskBodyMaxSize)
	return sonic.ConfigStd.NewDecoder(lr).Decode(dst)
}
