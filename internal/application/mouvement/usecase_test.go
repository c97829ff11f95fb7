package mouvement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes des ports
// ──────────────────────────────────────────────────────────────────────────────

type produitRepoFake struct {
	produits map[string]entity.Produit
	appels   int
}

func (f *produitRepoFake) Create(ctx context.Context, p *entity.Produit) error { return nil }

func (f *produitRepoFake) GetByCode(ctx context.Context, code string) (*entity.Produit, error) {
	f.appels++
	p, ok := f.produits[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *produitRepoFake) List(ctx context.Context) ([]entity.Produit, error) { return nil, nil }

func (f *produitRepoFake) ListEdition(ctx context.Context, limit int) ([]dto.ProduitEditionRow, error) {
	return nil, nil
}

func (f *produitRepoFake) ApplyPatch(ctx context.Context, p dto.ProduitPatch) (int64, error) {
	return 0, nil
}

type mouvementRepoFake struct {
	crees []entity.Mouvement
	rows  []dto.MouvementEditionRow

	debutRecu, finRecue time.Time
	patches             []dto.MouvementPatch
	applyPatchFn        func(p dto.MouvementPatch) (int64, error)
}

func (f *mouvementRepoFake) Create(ctx context.Context, m *entity.Mouvement) error {
	f.crees = append(f.crees, *m)
	return nil
}

func (f *mouvementRepoFake) ListByProduitJour(ctx context.Context, codeProd string, debut, fin time.Time) ([]dto.MouvementEditionRow, error) {
	f.debutRecu, f.finRecue = debut, fin
	return f.rows, nil
}

func (f *mouvementRepoFake) ApplyPatch(ctx context.Context, p dto.MouvementPatch) (int64, error) {
	f.patches = append(f.patches, p)
	if f.applyPatchFn != nil {
		return f.applyPatchFn(p)
	}
	return 1, nil
}

type txRunnerFake struct {
	repo      *mouvementRepoFake
	debuts    int
	rollbacks int
}

func (f *txRunnerFake) RunMouvements(ctx context.Context, fn func(mouvements repository.MouvementRepository) error) error {
	f.debuts++
	if err := fn(f.repo); err != nil {
		f.rollbacks++
		return err
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func newTestUseCase(produits map[string]entity.Produit) (*UseCase, *mouvementRepoFake, *txRunnerFake, *produitRepoFake) {
	pr := &produitRepoFake{produits: produits}
	mr := &mouvementRepoFake{}
	tx := &txRunnerFake{repo: mr}
	return NewUseCase(pr, mr, tx), mr, tx, pr
}

func actif(code string) map[string]entity.Produit {
	return map[string]entity.Produit{
		code: {Code: code, Produit: "Paracétamol", Statut: entity.StatutActif},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Saisie d'un mouvement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreer_OK(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(actif("P1"))

	err := uc.Creer(context.Background(), dto.MouvementCreate{
		DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeSortie,
		Mouvement: "vente", Quantite: ptr(decimal.NewFromInt(3)),
	})
	require.NoError(t, err)
	require.Len(t, mr.crees, 1)
	assert.Equal(t, "vente", mr.crees[0].Mouvement)
	assert.True(t, decimal.NewFromInt(3).Equal(mr.crees[0].Quantite))
}

// Quantité absente : 1 par défaut, comme l'écran de saisie.
func TestCreer_QuantiteParDefaut(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(actif("P1"))

	err := uc.Creer(context.Background(), dto.MouvementCreate{
		DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeEntree,
		Mouvement: "achat",
	})
	require.NoError(t, err)
	require.Len(t, mr.crees, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(mr.crees[0].Quantite))
}

// La nature est contrôlée avant tout accès au catalogue : un mouvement
// interdit ne déclenche même pas la lecture du produit.
func TestCreer_MouvementNonAutorise(t *testing.T) {
	uc, mr, _, pr := newTestUseCase(actif("P1"))

	err := uc.Creer(context.Background(), dto.MouvementCreate{
		DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeEntree,
		Mouvement: "ajustement", // accepté en édition, pas en saisie
	})
	require.ErrorIs(t, err, domain.ErrMouvementNonAutorise)
	assert.Equal(t, 0, pr.appels)
	assert.Empty(t, mr.crees)
}

// Les ajustements signés sont eux acceptés en saisie.
func TestCreer_AjustementsSignes(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(actif("P1"))

	for _, nature := range []string{"ajustement positif", "ajustement negatif"} {
		err := uc.Creer(context.Background(), dto.MouvementCreate{
			DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeEntree,
			Mouvement: nature,
		})
		require.NoError(t, err, "nature %q", nature)
	}
	assert.Len(t, mr.crees, 2)
}

func TestCreer_ProduitIntrouvable(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(nil)

	err := uc.Creer(context.Background(), dto.MouvementCreate{
		DateMvt: "2025-03-10", CodeProd: "ABSENT", TypeMvt: entity.TypeEntree,
		Mouvement: "achat",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mr.crees)
}

func TestCreer_ProduitInactif(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(map[string]entity.Produit{
		"P1": {Code: "P1", Produit: "Produit retiré", Statut: entity.StatutInactif},
	})

	err := uc.Creer(context.Background(), dto.MouvementCreate{
		DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeEntree,
		Mouvement: "achat",
	})
	require.ErrorIs(t, err, domain.ErrProduitInactif)
	assert.Empty(t, mr.crees)
}

func TestCreer_EntreesInvalides(t *testing.T) {
	uc, _, _, _ := newTestUseCase(actif("P1"))

	cas := []dto.MouvementCreate{
		{DateMvt: "2025-03-10", CodeProd: "", TypeMvt: entity.TypeEntree, Mouvement: "achat"},
		{DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: "transfert", Mouvement: "achat"},
		{DateMvt: "10/03/2025", CodeProd: "P1", TypeMvt: entity.TypeEntree, Mouvement: "achat"},
		{DateMvt: "2025-03-10", CodeProd: "P1", TypeMvt: entity.TypeEntree, Mouvement: "achat",
			Quantite: ptr(decimal.NewFromInt(-2))},
	}
	for i, in := range cas {
		err := uc.Creer(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "cas %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mouvements du jour
// ──────────────────────────────────────────────────────────────────────────────

// L'intervalle est semi-ouvert [jour 00:00, jour+1 00:00) : un mouvement à
// 23:59 appartient au jour, un mouvement à minuit le lendemain non.
func TestListerPourEdition_IntervalleSemiOuvert(t *testing.T) {
	uc, mr, _, _ := newTestUseCase(nil)

	_, err := uc.ListerPourEdition(context.Background(), "P1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), mr.debutRecu)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), mr.finRecue)
}

// Jour sans mouvement : liste vide, pas nil (sérialisée en [] côté JSON).
func TestListerPourEdition_JourVide(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)

	rows, err := uc.ListerPourEdition(context.Background(), "P1", "2025-03-10")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestListerPourEdition_EntreesInvalides(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)

	_, err := uc.ListerPourEdition(context.Background(), "", "2025-03-10")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListerPourEdition(context.Background(), "P1", "10/03/2025")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Patch en lot
// ──────────────────────────────────────────────────────────────────────────────

// Toute la validation précède la première mutation : un patch invalide en fin
// de lot bloque le lot sans qu'une transaction ait démarré.
func TestPatchEnLot_ValidationAvantTransaction(t *testing.T) {
	uc, mr, tx, _ := newTestUseCase(nil)

	_, err := uc.PatchEnLot(context.Background(), []dto.MouvementPatch{
		{ID: 1, Quantite: ptr(decimal.NewFromInt(5))},
		{ID: 2, Mouvement: ptr("téléportation")},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, tx.debuts)
	assert.Empty(t, mr.patches)
}

// L'édition accepte l'ajustement simple, refusé en saisie.
func TestPatchEnLot_AjustementAccepte(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)

	updated, err := uc.PatchEnLot(context.Background(), []dto.MouvementPatch{
		{ID: 1, Mouvement: ptr("ajustement")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

// {id: 7} sans aucun champ : ignoré, ni exécuté ni compté, et la
// transaction n'est pas ouverte si le lot ne contient que des patchs vides.
func TestPatchEnLot_PatchVideIgnore(t *testing.T) {
	uc, mr, tx, _ := newTestUseCase(nil)

	updated, err := uc.PatchEnLot(context.Background(), []dto.MouvementPatch{{ID: 7}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
	assert.Equal(t, 0, tx.debuts)
	assert.Empty(t, mr.patches)
}

// Un id inconnu annule l'ensemble du lot : ErrNotFound, rollback observé,
// total nul même si un patch précédent avait abouti.
func TestPatchEnLot_IdInconnuAnnuleLeLot(t *testing.T) {
	uc, mr, tx, _ := newTestUseCase(nil)
	mr.applyPatchFn = func(p dto.MouvementPatch) (int64, error) {
		if p.ID == 99 {
			return 0, nil
		}
		return 1, nil
	}

	updated, err := uc.PatchEnLot(context.Background(), []dto.MouvementPatch{
		{ID: 1, Quantite: ptr(decimal.NewFromInt(2))},
		{ID: 99, Quantite: ptr(decimal.NewFromInt(4))},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(0), updated)
	assert.Equal(t, 1, tx.rollbacks)
}

// Lot valide : transaction unique, total des lignes touchées.
func TestPatchEnLot_OK(t *testing.T) {
	uc, mr, tx, _ := newTestUseCase(nil)

	updated, err := uc.PatchEnLot(context.Background(), []dto.MouvementPatch{
		{ID: 1, Quantite: ptr(decimal.NewFromInt(2))},
		{ID: 2, DateMvt: ptr("2025-03-12"), TypeMvt: ptr(entity.TypeEntree)},
		{ID: 3}, // vide : ignoré
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.Equal(t, 1, tx.debuts)
	require.Len(t, mr.patches, 2)
}
