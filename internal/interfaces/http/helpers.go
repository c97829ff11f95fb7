package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain"
)

// erreurHTTP traduit la taxonomie d'erreurs du domaine en réponse HTTP :
// validation -> 400, nature non autorisée -> 422, introuvable -> 404,
// doublon/produit inactif/conflit -> 409, le reste -> 500.
func erreurHTTP(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMouvementNonAutorise):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "MOUVEMENT_NON_AUTORISE", Message: "Mouvement non autorisé",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "Ce code existe déjà.",
		})
	case errors.Is(err, domain.ErrProduitInactif):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "PRODUIT_INACTIF", Message: "Produit inactif",
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "Erreur serveur: " + err.Error(),
		})
	}
}

// periodeRequete lit et valide annee/mois des query params du dashboard.
func periodeRequete(c *fiber.Ctx) (annee, mois int, err error) {
	annee = c.QueryInt("annee", 0)
	mois = c.QueryInt("mois", 0)
	if annee < 2000 {
		return 0, 0, errors.New("annee doit être >= 2000")
	}
	if mois < 1 || mois > 12 {
		return 0, 0, errors.New("mois doit être entre 1 et 12")
	}
	return annee, mois, nil
}
