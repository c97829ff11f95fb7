package catalogue

import (
	"context"
	"fmt"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

// Colonnes restituées par list_products, dans l'ordre attendu par le front.
var colonnesCatalogue = []string{
	"code", "produit", "forme", "dosage", "classe", "cible", "unite",
	"prix_achat", "prix_vente", "stock_actuel", "date_creation", "statut",
}

// Taille de page fixe de l'écran d'édition produits.
const limiteEdition = 500

// TxRunner exécute un callback avec un repo produits lié à une transaction :
// tout passe ou tout est annulé.
type TxRunner interface {
	RunProduits(ctx context.Context, fn func(produits repository.ProduitRepository) error) error
}

// UseCase opérations du catalogue produits.
type UseCase struct {
	produits repository.ProduitRepository
	tx       TxRunner
}

// NewUseCase construit le usecase.
func NewUseCase(produits repository.ProduitRepository, tx TxRunner) *UseCase {
	return &UseCase{produits: produits, tx: tx}
}

// Creer valide et insère un nouveau produit.
// Statut hors énumération -> ErrInvalidInput ; code déjà pris -> ErrDuplicate.
func (uc *UseCase) Creer(ctx context.Context, in dto.ProduitIn) error {
	if in.Statut == "" {
		in.Statut = entity.StatutActif
	}
	if !entity.StatutValide(in.Statut) {
		return fmt.Errorf("%w: statut doit être Actif ou Inactif", domain.ErrInvalidInput)
	}
	if in.Code == "" || in.Produit == "" {
		return fmt.Errorf("%w: code et produit sont requis", domain.ErrInvalidInput)
	}

	p := entity.Produit{
		Code:        in.Code,
		Produit:     in.Produit,
		Forme:       in.Forme,
		Dosage:      in.Dosage,
		Classe:      in.Classe,
		Cible:       in.Cible,
		Unite:       in.Unite,
		PrixAchat:   in.PrixAchat,
		PrixVente:   in.PrixVente,
		StockActuel: in.StockActuel,
		Statut:      in.Statut,
	}
	if in.DateCreation != nil {
		t, err := dto.ParseDate(*in.DateCreation)
		if err != nil {
			return fmt.Errorf("%w: date_creation invalide: %s", domain.ErrInvalidInput, *in.DateCreation)
		}
		p.DateCreation = &t
	}

	return uc.produits.Create(ctx, &p)
}

// GetActif renvoie un produit par code pour l'écran de saisie de mouvement.
// Absent -> ErrNotFound ; inactif -> ErrProduitInactif (le front notifie, rien
// ne se passe silencieusement).
func (uc *UseCase) GetActif(ctx context.Context, code string) (*entity.Produit, error) {
	p, err := uc.produits.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.Actif() {
		return nil, domain.ErrProduitInactif
	}
	return p, nil
}

// Lister renvoie tout le catalogue avec l'en-tête de colonnes.
func (uc *UseCase) Lister(ctx context.Context) (dto.ListeProduitsResponse, error) {
	rows, err := uc.produits.List(ctx)
	if err != nil {
		return dto.ListeProduitsResponse{}, err
	}
	if rows == nil {
		rows = []entity.Produit{}
	}
	return dto.ListeProduitsResponse{Columns: colonnesCatalogue, Rows: rows}, nil
}

// ListerEdition renvoie les lignes compactes de l'écran d'édition.
func (uc *UseCase) ListerEdition(ctx context.Context) ([]dto.ProduitEditionRow, error) {
	rows, err := uc.produits.ListEdition(ctx, limiteEdition)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.ProduitEditionRow{}
	}
	return rows, nil
}

// PatchEnLot applique une liste de patchs produits dans une transaction
// unique. Les patchs sans champ effectif sont ignorés (ni exécutés ni
// comptés) ; un code inconnu compte simplement pour zéro ligne. Renvoie le
// total de lignes touchées.
func (uc *UseCase) PatchEnLot(ctx context.Context, patches []dto.ProduitPatch) (int64, error) {
	effectifs := make([]dto.ProduitPatch, 0, len(patches))
	for _, p := range patches {
		if !p.EstVide() {
			effectifs = append(effectifs, p)
		}
	}
	if len(effectifs) == 0 {
		return 0, nil
	}

	var updated int64
	err := uc.tx.RunProduits(ctx, func(produits repository.ProduitRepository) error {
		for _, p := range effectifs {
			n, err := produits.ApplyPatch(ctx, p)
			if err != nil {
				return err
			}
			updated += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
