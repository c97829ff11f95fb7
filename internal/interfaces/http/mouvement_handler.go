package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/application/mouvement"
)

// MouvementHandler endpoints du journal de stock.
type MouvementHandler struct {
	uc *mouvement.UseCase
}

// NewMouvementHandler construit le handler.
func NewMouvementHandler(uc *mouvement.UseCase) *MouvementHandler {
	return &MouvementHandler{uc: uc}
}

// Create godoc
// @Summary      Enregistrer un mouvement de stock
// @Tags         mouvements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MouvementCreate  true  "Mouvement à créer"
// @Success      201   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/mouvements [post]
func (h *MouvementHandler) Create(c *fiber.Ctx) error {
	var in dto.MouvementCreate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.Creer(c.Context(), in); err != nil {
		return erreurHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// ListEdition godoc
// @Summary      Mouvements d'un produit pour un jour donné
// @Tags         mouvements
// @Produce      json
// @Param        code_prod  query  string  true  "Code produit"
// @Param        day        query  string  true  "YYYY-MM-DD"
// @Success      200  {array}   dto.MouvementEditionRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/edit [get]
func (h *MouvementHandler) ListEdition(c *fiber.Ctx) error {
	rows, err := h.uc.ListerPourEdition(c.Context(), c.Query("code_prod"), c.Query("day"))
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(rows)
}

// BulkUpdate godoc
// @Summary      Mise à jour en lot des mouvements (transaction unique)
// @Tags         mouvements
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.MouvementPatch  true  "Patchs partiels, id obligatoire"
// @Success      200   {object}  dto.BulkUpdateResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements/edit [put]
func (h *MouvementHandler) BulkUpdate(c *fiber.Ctx) error {
	var patches []dto.MouvementPatch
	if err := c.BodyParser(&patches); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	updated, err := h.uc.PatchEnLot(c.Context(), patches)
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(dto.BulkUpdateResult{Updated: updated})
}
