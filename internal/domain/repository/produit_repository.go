package repository

import (
	"context"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
)

// ProduitRepository port de persistance du catalogue produits.
type ProduitRepository interface {
	// Create insère un nouveau produit. Renvoie domain.ErrDuplicate si le code existe déjà.
	Create(ctx context.Context, p *entity.Produit) error

	// GetByCode renvoie le produit ou (nil, nil) s'il n'existe pas.
	GetByCode(ctx context.Context, code string) (*entity.Produit, error)

	// List renvoie tout le catalogue trié par nom de produit.
	List(ctx context.Context) ([]entity.Produit, error)

	// ListEdition renvoie les colonnes éditables des `limit` premiers produits triés par code.
	ListEdition(ctx context.Context, limit int) ([]dto.ProduitEditionRow, error)

	// ApplyPatch applique les champs non nil du patch et renvoie le nombre de lignes touchées
	// (0 si le code n'existe pas — pas une erreur à ce niveau).
	ApplyPatch(ctx context.Context, p dto.ProduitPatch) (int64, error)
}
