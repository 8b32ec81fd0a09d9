package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API error response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Success sends a success response, merging fields into the top-level body
func Success(c *fiber.Ctx, message string, fields fiber.Map) error {
	return c.JSON(body(message, fields))
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, fields fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(body(message, fields))
}

func body(message string, fields fiber.Map) fiber.Map {
	out := fiber.Map{"success": true}
	if message != "" {
		out["message"] = message
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// RequestEntityTooLarge sends a 413 response
func RequestEntityTooLarge(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusRequestEntityTooLarge, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
