package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform success body: {success, data?, message}.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func respond(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: message})
}
