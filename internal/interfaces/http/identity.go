package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// La autenticación vive en una capa externa; acá solo se leen los headers que
// esa capa ya validó: cliente (tenant) y usuario actuante para la auditoría.
const (
	headerClientID = "X-Client-ID"
	headerUserID   = "X-User-ID"
)

// GetClientID devuelve el cliente del request (0 si falta o es inválido).
func GetClientID(c *fiber.Ctx) int64 {
	v, _ := strconv.ParseInt(c.Get(headerClientID), 10, 64)
	return v
}

// GetUserID devuelve el usuario actuante del request (0 si falta o es inválido).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := strconv.ParseInt(c.Get(headerUserID), 10, 64)
	return v
}
