package mouvement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

// TxRunner exécute un callback avec un repo mouvements lié à une transaction :
// tout passe ou tout est annulé.
type TxRunner interface {
	RunMouvements(ctx context.Context, fn func(mouvements repository.MouvementRepository) error) error
}

// UseCase opérations du journal de stock.
type UseCase struct {
	produits   repository.ProduitRepository
	mouvements repository.MouvementRepository
	tx         TxRunner
}

// NewUseCase construit le usecase.
func NewUseCase(produits repository.ProduitRepository, mouvements repository.MouvementRepository, tx TxRunner) *UseCase {
	return &UseCase{produits: produits, mouvements: mouvements, tx: tx}
}

// Creer enregistre un nouveau mouvement. Préconditions, dans l'ordre :
// nature autorisée (sinon ErrMouvementNonAutorise), produit existant (sinon
// ErrNotFound), produit actif (sinon ErrProduitInactif). id et stock_apres
// sont affectés par la base.
func (uc *UseCase) Creer(ctx context.Context, in dto.MouvementCreate) error {
	if !dto.MouvementAutorise(dto.MouvementsSaisie, in.Mouvement) {
		return fmt.Errorf("%w: %s", domain.ErrMouvementNonAutorise, in.Mouvement)
	}
	if in.CodeProd == "" {
		return fmt.Errorf("%w: code_prod requis", domain.ErrInvalidInput)
	}
	if !entity.TypeMvtValide(in.TypeMvt) {
		return fmt.Errorf("%w: type_mvt invalide: %s", domain.ErrInvalidInput, in.TypeMvt)
	}
	dateMvt, err := dto.ParseDate(in.DateMvt)
	if err != nil {
		return fmt.Errorf("%w: date_mvt invalide: %s", domain.ErrInvalidInput, in.DateMvt)
	}

	p, err := uc.produits.GetByCode(ctx, in.CodeProd)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if !p.Actif() {
		return domain.ErrProduitInactif
	}

	// L'utilisateur ne saisit pas la quantité : 1 par défaut.
	quantite := decimal.NewFromInt(1)
	if in.Quantite != nil {
		if in.Quantite.IsNegative() {
			return fmt.Errorf("%w: quantite doit être positive", domain.ErrInvalidInput)
		}
		quantite = *in.Quantite
	}

	m := entity.Mouvement{
		DateMvt:     dateMvt,
		CodeProd:    in.CodeProd,
		TypeMvt:     in.TypeMvt,
		Mouvement:   in.Mouvement,
		Quantite:    quantite,
		Commentaire: in.Commentaire,
	}
	return uc.mouvements.Create(ctx, &m)
}

// ListerPourEdition renvoie les mouvements d'un produit pour un jour donné,
// sur l'intervalle [jour 00:00, jour+1 00:00) — indépendant de l'heure stockée.
func (uc *UseCase) ListerPourEdition(ctx context.Context, codeProd, jour string) ([]dto.MouvementEditionRow, error) {
	if codeProd == "" {
		return nil, fmt.Errorf("%w: code_prod requis", domain.ErrInvalidInput)
	}
	j, err := time.Parse("2006-01-02", jour)
	if err != nil {
		return nil, fmt.Errorf("%w: day invalide: %s", domain.ErrInvalidInput, jour)
	}

	debut := time.Date(j.Year(), j.Month(), j.Day(), 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 0, 1)

	rows, err := uc.mouvements.ListByProduitJour(ctx, codeProd, debut, fin)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.MouvementEditionRow{}
	}
	return rows, nil
}

// validerPatch contrôle les valeurs fournies d'un patch (énumérations, borne
// de quantité, date). Appelé pour tous les patchs avant toute mutation.
func validerPatch(p dto.MouvementPatch) error {
	if p.ID == 0 {
		return fmt.Errorf("%w: id requis", domain.ErrInvalidInput)
	}
	if p.TypeMvt != nil && !entity.TypeMvtValide(*p.TypeMvt) {
		return fmt.Errorf("%w: type_mvt invalide: %s", domain.ErrInvalidInput, *p.TypeMvt)
	}
	if p.Mouvement != nil && !dto.MouvementAutorise(dto.MouvementsEdition, *p.Mouvement) {
		return fmt.Errorf("%w: mouvement invalide: %s", domain.ErrInvalidInput, *p.Mouvement)
	}
	if p.Quantite != nil && p.Quantite.IsNegative() {
		return fmt.Errorf("%w: quantite doit être positive (id=%d)", domain.ErrInvalidInput, p.ID)
	}
	if _, err := p.DateMvtTime(); err != nil {
		return fmt.Errorf("%w: date_mvt invalide (id=%d)", domain.ErrInvalidInput, p.ID)
	}
	return nil
}

// PatchEnLot applique une liste de patchs mouvements dans une transaction
// unique. Toute la validation précède la première mutation ; un id inconnu
// annule l'ensemble du lot (ErrNotFound) ; les patchs sans champ effectif sont
// ignorés sans interrompre le lot. Renvoie le total de lignes touchées.
func (uc *UseCase) PatchEnLot(ctx context.Context, patches []dto.MouvementPatch) (int64, error) {
	if len(patches) == 0 {
		return 0, nil
	}
	for _, p := range patches {
		if err := validerPatch(p); err != nil {
			return 0, err
		}
	}

	effectifs := make([]dto.MouvementPatch, 0, len(patches))
	for _, p := range patches {
		if !p.EstVide() {
			effectifs = append(effectifs, p)
		}
	}
	if len(effectifs) == 0 {
		return 0, nil
	}

	var updated int64
	err := uc.tx.RunMouvements(ctx, func(mouvements repository.MouvementRepository) error {
		for _, p := range effectifs {
			n, err := mouvements.ApplyPatch(ctx, p)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: mouvement introuvable (id=%d)", domain.ErrNotFound, p.ID)
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
