package repository

import (
	"context"
	"time"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
)

// MouvementRepository port de persistance du journal de stock.
type MouvementRepository interface {
	// Create insère un mouvement ; id et stock_apres sont affectés par la base.
	Create(ctx context.Context, m *entity.Mouvement) error

	// ListByProduitJour renvoie les mouvements d'un produit dont la date tombe
	// dans [debut, fin), triés par id croissant.
	ListByProduitJour(ctx context.Context, codeProd string, debut, fin time.Time) ([]dto.MouvementEditionRow, error)

	// ApplyPatch applique les champs non nil du patch et renvoie le nombre de
	// lignes touchées (0 si l'id n'existe pas).
	ApplyPatch(ctx context.Context, p dto.MouvementPatch) (int64, error)
}
