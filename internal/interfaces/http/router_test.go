package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mdiagne/pharmacie-api/internal/application/catalogue"
	"github.com/mdiagne/pharmacie-api/internal/application/dashboard"
	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/application/mouvement"
	"github.com/mdiagne/pharmacie-api/internal/domain"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes des ports : les handlers sont testés au-dessus des vrais usecases,
// seule la couche Postgres est remplacée.
// ──────────────────────────────────────────────────────────────────────────────

type produitRepoFake struct {
	produits map[string]entity.Produit
	rows     []dto.ProduitEditionRow

	applyPatchFn func(p dto.ProduitPatch) (int64, error)
}

func (f *produitRepoFake) Create(ctx context.Context, p *entity.Produit) error {
	if f.produits == nil {
		f.produits = map[string]entity.Produit{}
	}
	if _, ok := f.produits[p.Code]; ok {
		return domain.ErrDuplicate
	}
	f.produits[p.Code] = *p
	return nil
}

func (f *produitRepoFake) GetByCode(ctx context.Context, code string) (*entity.Produit, error) {
	p, ok := f.produits[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *produitRepoFake) List(ctx context.Context) ([]entity.Produit, error) {
	out := make([]entity.Produit, 0, len(f.produits))
	for _, p := range f.produits {
		out = append(out, p)
	}
	return out, nil
}

func (f *produitRepoFake) ListEdition(ctx context.Context, limit int) ([]dto.ProduitEditionRow, error) {
	return f.rows, nil
}

func (f *produitRepoFake) ApplyPatch(ctx context.Context, p dto.ProduitPatch) (int64, error) {
	if f.applyPatchFn != nil {
		return f.applyPatchFn(p)
	}
	return 1, nil
}

type mouvementRepoFake struct {
	crees []entity.Mouvement
	rows  []dto.MouvementEditionRow

	applyPatchFn func(p dto.MouvementPatch) (int64, error)
}

func (f *mouvementRepoFake) Create(ctx context.Context, m *entity.Mouvement) error {
	f.crees = append(f.crees, *m)
	return nil
}

func (f *mouvementRepoFake) ListByProduitJour(ctx context.Context, codeProd string, debut, fin time.Time) ([]dto.MouvementEditionRow, error) {
	return f.rows, nil
}

func (f *mouvementRepoFake) ApplyPatch(ctx context.Context, p dto.MouvementPatch) (int64, error) {
	if f.applyPatchFn != nil {
		return f.applyPatchFn(p)
	}
	return 1, nil
}

type dashboardRepoFake struct {
	classes     []string
	rowsPeriode int
	nbProduits  int
	denom, num  int
	mouvements  []dto.MouvementDashboardRow

	filtreRecu dto.MouvementsFiltre
}

func (f *dashboardRepoFake) Classes(ctx context.Context) ([]string, error) { return f.classes, nil }

func (f *dashboardRepoFake) RowsPeriode(ctx context.Context, annee, mois int) (int, error) {
	return f.rowsPeriode, nil
}

func (f *dashboardRepoFake) NbProduits(ctx context.Context, annee, mois int, classe string) (int, error) {
	return f.nbProduits, nil
}

func (f *dashboardRepoFake) DispoDenominateur(ctx context.Context, classe string) (int, error) {
	return f.denom, nil
}

func (f *dashboardRepoFake) DispoNumerateur(ctx context.Context, annee, mois int, classe string) (int, error) {
	return f.num, nil
}

func (f *dashboardRepoFake) TotauxProfit(ctx context.Context, annee, mois int, classe string) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

func (f *dashboardRepoFake) EtatStockShare(ctx context.Context, ym, classe string) ([]dto.EtatStockItem, error) {
	return nil, nil
}

func (f *dashboardRepoFake) MouvementHist(ctx context.Context, annee, mois int, classe string) ([]dto.MouvementHistItem, error) {
	return nil, nil
}

func (f *dashboardRepoFake) TableauMensuel(ctx context.Context, ym, ymPrec string, annee, mois int, classe string) ([]dto.TableauMensuelRow, error) {
	return nil, nil
}

func (f *dashboardRepoFake) Mouvements(ctx context.Context, filtre dto.MouvementsFiltre) ([]dto.MouvementDashboardRow, error) {
	f.filtreRecu = filtre
	return f.mouvements, nil
}

func (f *dashboardRepoFake) FiltresMouvements(ctx context.Context, dateFrom, dateTo string) ([]string, []string, error) {
	return nil, nil, nil
}

// txRunnerFake implémente les deux runners : fn en erreur => lot annulé.
type txRunnerFake struct {
	produits   *produitRepoFake
	mouvements *mouvementRepoFake
}

func (f *txRunnerFake) RunProduits(ctx context.Context, fn func(produits repository.ProduitRepository) error) error {
	return fn(f.produits)
}

func (f *txRunnerFake) RunMouvements(ctx context.Context, fn func(mouvements repository.MouvementRepository) error) error {
	return fn(f.mouvements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montage de l'app de test
// ──────────────────────────────────────────────────────────────────────────────

type testDeps struct {
	app        *fiber.App
	produits   *produitRepoFake
	mouvements *mouvementRepoFake
	dashboard  *dashboardRepoFake
}

func newTestApp(t *testing.T) *testDeps {
	t.Helper()

	pr := &produitRepoFake{produits: map[string]entity.Produit{}}
	mr := &mouvementRepoFake{}
	dr := &dashboardRepoFake{}
	tx := &txRunnerFake{produits: pr, mouvements: mr}

	app := fiber.New()
	Router(app, RouterDeps{
		DashboardUC: dashboard.NewUseCase(dr),
		CatalogueUC: catalogue.NewUseCase(pr, tx),
		MouvementUC: mouvement.NewUseCase(pr, mr, tx),
	})

	return &testDeps{app: app, produits: pr, mouvements: mr, dashboard: dr}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Vérifie que la route paramétrée /:code ne capte pas les routes nommées.
func TestRouter_RoutesProduitsNonCaptees(t *testing.T) {
	d := newTestApp(t)
	d.produits.rows = []dto.ProduitEditionRow{}

	resp := doJSON(t, d.app, fiber.MethodGet, "/api/products/edit_products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
