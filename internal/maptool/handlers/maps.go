package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"maptool/internal/maptool/generator"
	"maptool/internal/maptool/intersections"
	"maptool/internal/maptool/models"
	"maptool/internal/maptool/render"
	"maptool/internal/maptool/repository"
)

// ============================================================
// Maps Handler
// ============================================================

// MapStore хранилище документов карт.
type MapStore interface {
	Save(ctx context.Context, m *models.Map) error
	Get(ctx context.Context, id string) (*models.Map, error)
	List(ctx context.Context) ([]models.MapSummary, error)
	Delete(ctx context.Context, id string) error
}

// Exporter пишет файлы экспорта карты.
type Exporter interface {
	WriteMap(m *models.Map) (string, error)
	WriteSVG(id, svg string) (string, error)
	Remove(id string) error
}

type MapHandler struct {
	store    MapStore
	exporter Exporter
	retries  int
}

// NewMapHandler: exporter может быть nil, тогда файлы не пишутся.
func NewMapHandler(store MapStore, exporter Exporter, retries int) *MapHandler {
	return &MapHandler{
		store:    store,
		exporter: exporter,
		retries:  max(retries, 1),
	}
}

type createResponse struct {
	Map   *models.Map     `json:"map"`
	Stats generator.Stats `json:"stats"`
}

// Defaults отдает параметры генерации по умолчанию.
func (h *MapHandler) Defaults(c fiber.Ctx) error {
	return c.JSON(models.DefaultParams())
}

// Create генерирует карту по параметрам из тела и сохраняет ее.
// Пустое тело означает параметры по умолчанию.
func (h *MapHandler) Create(c fiber.Ctx) error {
	params := models.DefaultParams()
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &params); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}
	if err := params.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("[MAPS] Generating map, seed=%d rooms=%d", params.Seed, params.Rooms)
	m, st, err := generator.GenerateRetry(c.Context(), params, h.retries, log.Printf)
	if err != nil {
		log.Printf("[MAPS] Generation failed: %v", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.store.Save(c.Context(), m); err != nil {
		log.Printf("[MAPS] Save failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save map"})
	}
	h.export(m)

	log.Printf("[MAPS] Map %s: %d rooms, %d corridors, %d merges",
		m.ID, len(m.Rooms), len(m.Corridors), st.Resolve.Merges)
	return c.Status(http.StatusCreated).JSON(createResponse{Map: m, Stats: st})
}

func (h *MapHandler) export(m *models.Map) {
	if h.exporter == nil {
		return
	}
	if _, err := h.exporter.WriteMap(m); err != nil {
		log.Printf("[MAPS] Export json for %s failed: %v", m.ID, err)
		return
	}
	svg, err := render.NewRenderer().Render(&m.Model)
	if err != nil {
		log.Printf("[MAPS] Render %s failed: %v", m.ID, err)
		return
	}
	if _, err := h.exporter.WriteSVG(m.ID, svg); err != nil {
		log.Printf("[MAPS] Export svg for %s failed: %v", m.ID, err)
	}
}

func (h *MapHandler) List(c fiber.Ctx) error {
	list, err := h.store.List(c.Context())
	if err != nil {
		log.Printf("[MAPS] List failed: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list maps"})
	}
	return c.JSON(list)
}

func (h *MapHandler) Get(c fiber.Ctx) error {
	m, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(m)
}

// GetSVG рисует сохраненную карту. ?entangled=true подсвечивает
// перепутанные коридоры.
func (h *MapHandler) GetSVG(c fiber.Ctx) error {
	m, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}

	renderer := render.NewRenderer()
	if highlight, _ := strconv.ParseBool(c.Query("entangled")); highlight {
		renderer.HighlightEntangled = true
		intersections.MarkEntangled(&m.Model)
	}

	svg, err := renderer.Render(&m.Model)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

func (h *MapHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.Delete(c.Context(), id); err != nil {
		return storeError(c, err)
	}
	if h.exporter != nil {
		if err := h.exporter.Remove(id); err != nil {
			log.Printf("[MAPS] Remove export of %s failed: %v", id, err)
		}
	}
	return c.SendStatus(http.StatusNoContent)
}

// storeError отвечает 404 для неизвестного id и 500 для остального.
func storeError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "map not found"})
	}
	log.Printf("[MAPS] Store error for %s: %v", c.Params("id"), err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "map store failure"})
}
