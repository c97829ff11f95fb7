package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

// Colonnes triables du navigateur de mouvements. Toute autre valeur retombe
// silencieusement sur la colonne par défaut.
var colonnesTriAutorisees = map[string]struct{}{
	"date_mvt": {}, "nom_produit": {}, "forme": {}, "dosage": {}, "classe": {},
	"cible": {}, "unite": {}, "prix_achat": {}, "prix_vente": {},
	"type_mouvement": {}, "mouvement": {}, "quantite": {}, "stock_apres": {},
	"commentaire": {},
}

const (
	TriParDefaut  = "date_mvt"
	SensParDefaut = "desc"
	LimiteDefaut  = 5000
	LimiteMax     = 20000
)

// NormaliserTri ramène la colonne de tri à l'allow-list et le sens à asc/desc.
func NormaliserTri(sortBy, sortDir string) (string, string) {
	if _, ok := colonnesTriAutorisees[sortBy]; !ok {
		sortBy = TriParDefaut
	}
	if sortDir != "asc" {
		sortDir = SensParDefaut
	}
	return sortBy, sortDir
}

// UseCase agrégations du tableau de bord.
type UseCase struct {
	repo repository.DashboardRepository
}

// NewUseCase construit le usecase.
func NewUseCase(repo repository.DashboardRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Classes liste les classes distinctes du catalogue.
func (uc *UseCase) Classes(ctx context.Context) (dto.ClassesResponse, error) {
	classes, err := uc.repo.Classes(ctx)
	if err != nil {
		return dto.ClassesResponse{}, err
	}
	if classes == nil {
		classes = []string{}
	}
	return dto.ClassesResponse{Classes: classes}, nil
}

// YM renvoie le mois au format "YYYY-MM" et le mois précédent au même format.
// Calculé une seule fois ici : les requêtes photo ne manipulent que des
// chaînes canoniques.
func YM(annee, mois int) (ym, ymPrec string) {
	premier := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC)
	return premier.Format("2006-01"), premier.AddDate(0, -1, 0).Format("2006-01")
}

// arrondi2 arrondit à 2 décimales (taux en pourcentage).
func arrondi2(x float64) float64 {
	return math.Round(x*100) / 100
}

// KPIs calcule les indicateurs du mois : produits mouvementés, taux de
// disponibilité et bénéfice net, plus un bloc de diagnostic.
func (uc *UseCase) KPIs(ctx context.Context, annee, mois int, classeRecue string) (dto.KPIResponse, error) {
	classe := NormaliserClasse(classeRecue)

	rowsPeriode, err := uc.repo.RowsPeriode(ctx, annee, mois)
	if err != nil {
		return dto.KPIResponse{}, fmt.Errorf("kpis rows_period: %w", err)
	}

	nbProduits, err := uc.repo.NbProduits(ctx, annee, mois, classe)
	if err != nil {
		return dto.KPIResponse{}, fmt.Errorf("kpis nb_produits: %w", err)
	}

	denom, err := uc.repo.DispoDenominateur(ctx, classe)
	if err != nil {
		return dto.KPIResponse{}, fmt.Errorf("kpis dispo denom: %w", err)
	}
	num, err := uc.repo.DispoNumerateur(ctx, annee, mois, classe)
	if err != nil {
		return dto.KPIResponse{}, fmt.Errorf("kpis dispo num: %w", err)
	}

	// Dénominateur nul : taux à 0, jamais NaN.
	taux := 0.0
	if denom > 0 {
		taux = arrondi2(float64(num) / float64(denom) * 100.0)
	}

	ventes, achats, err := uc.repo.TotauxProfit(ctx, annee, mois, classe)
	if err != nil {
		return dto.KPIResponse{}, fmt.Errorf("kpis profit: %w", err)
	}

	return dto.KPIResponse{
		NbProduits:        nbProduits,
		TauxDisponibilite: taux,
		BeneficeNet:       ventes.Sub(achats).Round(2),
		Debug: dto.KPIDebug{
			Annee:       annee,
			Mois:        mois,
			ClasseRecue: classeRecue,
			ClasseNorm:  classe,
			RowsPeriode: rowsPeriode,
			DispoNum:    num,
			DispoDenom:  denom,
			TotalVentes: ventes.Round(2),
			TotalAchats: achats.Round(2),
		},
	}, nil
}

// EtatStockShare répartition des états de stock du mois.
func (uc *UseCase) EtatStockShare(ctx context.Context, annee, mois int, classeRecue string) (dto.EtatStockShareResponse, error) {
	classe := NormaliserClasse(classeRecue)
	ym, _ := YM(annee, mois)

	items, err := uc.repo.EtatStockShare(ctx, ym, classe)
	if err != nil {
		return dto.EtatStockShareResponse{}, fmt.Errorf("etat_stock_share: %w", err)
	}
	if items == nil {
		items = []dto.EtatStockItem{}
	}

	total := 0
	for _, it := range items {
		total += it.Value
	}
	return dto.EtatStockShareResponse{YM: ym, Classe: classe, Total: total, Items: items}, nil
}

// MouvementHist histogramme des mouvements par (nature, sens).
func (uc *UseCase) MouvementHist(ctx context.Context, annee, mois int, classeRecue string) (dto.MouvementHistResponse, error) {
	classe := NormaliserClasse(classeRecue)
	items, err := uc.repo.MouvementHist(ctx, annee, mois, classe)
	if err != nil {
		return dto.MouvementHistResponse{}, fmt.Errorf("movement_hist: %w", err)
	}
	if items == nil {
		items = []dto.MouvementHistItem{}
	}
	return dto.MouvementHistResponse{Items: items}, nil
}

// TableauMensuel tableau synthétique du mois : stock initial (photo du mois
// précédent), entrées/sorties de la période, sdu/cmm/état de la photo courante.
// Les produits sans photo courante sont absents, par construction.
func (uc *UseCase) TableauMensuel(ctx context.Context, annee, mois int, classeRecue string) (dto.TableauMensuelResponse, error) {
	classe := NormaliserClasse(classeRecue)
	ym, ymPrec := YM(annee, mois)

	rows, err := uc.repo.TableauMensuel(ctx, ym, ymPrec, annee, mois, classe)
	if err != nil {
		return dto.TableauMensuelResponse{}, fmt.Errorf("tableau_mensuel: %w", err)
	}
	if rows == nil {
		rows = []dto.TableauMensuelRow{}
	}
	return dto.TableauMensuelResponse{Data: rows}, nil
}

// Mouvements navigateur de mouvements : le tri est ramené à l'allow-list,
// classe/cible à la sentinelle nil. La limite arrive déjà validée du handler.
func (uc *UseCase) Mouvements(ctx context.Context, f dto.MouvementsFiltre) (dto.MouvementsResponse, error) {
	f.SortBy, f.SortDir = NormaliserTri(f.SortBy, f.SortDir)
	if f.Limit < 1 || f.Limit > LimiteMax {
		f.Limit = LimiteDefaut
	}

	items, err := uc.repo.Mouvements(ctx, f)
	if err != nil {
		return dto.MouvementsResponse{}, fmt.Errorf("movements: %w", err)
	}
	if items == nil {
		items = []dto.MouvementDashboardRow{}
	}
	return dto.MouvementsResponse{Items: items, Limit: f.Limit}, nil
}

// FiltresMouvements valeurs de classe et cible pour peupler les filtres du front.
func (uc *UseCase) FiltresMouvements(ctx context.Context, dateFrom, dateTo string) (dto.FiltresResponse, error) {
	classes, cibles, err := uc.repo.FiltresMouvements(ctx, dateFrom, dateTo)
	if err != nil {
		return dto.FiltresResponse{}, fmt.Errorf("movement filters: %w", err)
	}
	if classes == nil {
		classes = []string{}
	}
	if cibles == nil {
		cibles = []string{}
	}
	return dto.FiltresResponse{Classes: classes, Cibles: cibles}, nil
}
