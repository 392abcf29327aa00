package httpserver

import (
	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

func writeSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{
		Status: statusSuccess,
		Data:   data,
	})
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{
		Status: statusFailure,
		Error: ErrorDetail{
			Code:    status,
			Message: message,
		},
	})
}
