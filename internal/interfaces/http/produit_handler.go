package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdiagne/pharmacie-api/internal/application/catalogue"
	"github.com/mdiagne/pharmacie-api/internal/application/dto"
)

// ProduitHandler endpoints du catalogue produits.
type ProduitHandler struct {
	uc *catalogue.UseCase
}

// NewProduitHandler construit le handler.
func NewProduitHandler(uc *catalogue.UseCase) *ProduitHandler {
	return &ProduitHandler{uc: uc}
}

// Create godoc
// @Summary      Enregistrer un nouveau produit
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduitIn  true  "Produit à créer"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/insert_prod [post]
func (h *ProduitHandler) Create(c *fiber.Ctx) error {
	var in dto.ProduitIn
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.Creer(c.Context(), in); err != nil {
		return erreurHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "✅ Produit enregistré."})
}

// ListEdition godoc
// @Summary      Lignes compactes pour l'écran d'édition produits
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProduitEditionRow
// @Router       /api/products/edit_products [get]
func (h *ProduitHandler) ListEdition(c *fiber.Ctx) error {
	rows, err := h.uc.ListerEdition(c.Context())
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(rows)
}

// BulkUpdate godoc
// @Summary      Mise à jour en lot du catalogue (transaction unique)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ProduitPatch  true  "Patchs partiels, code obligatoire"
// @Success      200   {object}  dto.BulkUpdateResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/edit_products [put]
func (h *ProduitHandler) BulkUpdate(c *fiber.Ctx) error {
	var patches []dto.ProduitPatch
	if err := c.BodyParser(&patches); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	updated, err := h.uc.PatchEnLot(c.Context(), patches)
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(dto.BulkUpdateResult{Updated: updated})
}

// GetActif godoc
// @Summary      Produit actif par code (affichage avant saisie de mouvement)
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Code produit"
// @Success      200  {object}  entity.Produit
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProduitHandler) GetActif(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requis"})
	}
	p, err := h.uc.GetActif(c.Context(), code)
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(p)
}
