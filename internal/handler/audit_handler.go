package handler

import (
	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler {
	return &AuditHandler{service: s}
}

func toResponses(entries []model.AuditData) []model.AuditResponse {
	out := make([]model.AuditResponse, len(entries))
	for i := range entries {
		out[i] = entries[i].ToResponse()
	}
	return out
}

// GetAll lists the ledger, newest first.
// GET /api/audit?produk_id=<uuid>
func (h *AuditHandler) GetAll(c *fiber.Ctx) error {
	var filter repository.AuditFilter
	if raw := c.Query("produk_id"); raw != "" {
		productID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "ID produk tidak valid"})
		}
		filter.ProductID = &productID
	}

	entries, err := h.service.ListEntries(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": toResponses(entries)})
}

// GET /api/audit/produk/:produk_id
func (h *AuditHandler) GetByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("produk_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "ID produk tidak valid"})
	}

	entries, err := h.service.ListEntries(c.UserContext(), repository.AuditFilter{ProductID: &productID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": toResponses(entries)})
}

func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "ID audit tidak valid"})
	}

	entry, err := h.service.GetEntry(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entry.ToResponse()})
}

// CreateSale records a sale and takes the quantity out of stock.
// POST /api/audit/penjualan
func (h *AuditHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.service.RecordSale(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Data penjualan berhasil ditambahkan", "data": entry.ToResponse()})
}

// POST /api/audit/pengeluaran
func (h *AuditHandler) CreateExpense(c *fiber.Ctx) error {
	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.service.RecordExpense(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Data pengeluaran berhasil ditambahkan", "data": entry.ToResponse()})
}

// PUT /api/audit/:id
func (h *AuditHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "ID audit tidak valid"})
	}

	var req service.UpdateAuditRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.service.UpdateEntry(c.UserContext(), id, &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Data audit berhasil diperbarui", "data": entry.ToResponse()})
}

// DELETE /api/audit/:id
func (h *AuditHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "ID audit tidak valid"})
	}

	if err := h.service.DeleteEntry(c.UserContext(), id, actor(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Data audit berhasil dihapus"})
}
