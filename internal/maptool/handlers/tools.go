package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"maptool/internal/maptool/intersections"
	"maptool/internal/maptool/models"
	"maptool/internal/maptool/parser"
	"maptool/internal/maptool/render"
)

// ============================================================
// Resolve / Render / Import Handlers
// ============================================================

type resolveResponse struct {
	Model *models.Model       `json:"model"`
	Stats intersections.Stats `json:"stats"`
}

// statusFor: 422 для фатальных ошибок распутывания (нужен другой seed),
// 500 для остальных.
func statusFor(err error) int {
	switch {
	case intersections.IsFatal(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func validateModel(m *models.Model) error {
	for i, c := range m.Corridors {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("corridor %d: %w", i, err)
		}
	}
	return m.CheckAdjacency()
}

func resolve(c fiber.Ctx, m *models.Model) error {
	st, err := intersections.ResolveAll(c.Context(), m, intersections.Options{Logf: log.Printf})
	if err != nil {
		log.Printf("[RESOLVE] Failed: %v", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resolveResponse{Model: m, Stats: st})
}

// Resolve распутывает присланную модель.
func Resolve(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var m models.Model
	if err := json.Unmarshal(c.Body(), &m); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if err := validateModel(&m); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return resolve(c, &m)
}

// Render рисует присланную карту в SVG. ?entangled=true подсвечивает
// перепутанные коридоры.
func Render(c fiber.Ctx) error {
	log.Printf("[RENDER] Received request, %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var m models.Map
	if err := json.Unmarshal(c.Body(), &m); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}

	renderer := render.NewRenderer()
	if highlight, _ := strconv.ParseBool(c.Query("entangled")); highlight {
		renderer.HighlightEntangled = true
		intersections.MarkEntangled(&m.Model)
	}

	svg, err := renderer.Render(&m.Model)
	if err != nil {
		log.Printf("[RENDER] Render error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Import читает SVG из multipart поля file и возвращает распутанную модель.
func Import(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[IMPORT] FormFile error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}
	log.Printf("[IMPORT] File received: %s, size: %d", file.Filename, file.Size)

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	m, err := parser.ParseSVG(io.LimitReader(f, file.Size+1))
	if err != nil {
		log.Printf("[IMPORT] Parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return resolve(c, m)
}
