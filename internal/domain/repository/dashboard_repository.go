package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
)

// DashboardRepository port des agrégations de reporting. Toutes les méthodes
// acceptant une classe attendent la valeur déjà normalisée ("Tout" = pas de
// restriction) — la normalisation se fait une seule fois dans le usecase.
type DashboardRepository interface {
	// Classes renvoie les classes distinctes non vides du catalogue.
	Classes(ctx context.Context) ([]string, error)

	// RowsPeriode compte les lignes de mouvements de la période, sans filtre
	// de classe (diagnostic uniquement).
	RowsPeriode(ctx context.Context, annee, mois int) (int, error)

	// NbProduits compte les produits distincts avec au moins un mouvement dans la période.
	NbProduits(ctx context.Context, annee, mois int, classe string) (int, error)

	// DispoDenominateur compte les produits actifs (filtrés par classe).
	DispoDenominateur(ctx context.Context, classe string) (int, error)

	// DispoNumerateur compte les produits actifs dont le dernier mouvement du
	// mois (id le plus élevé) laisse un stock_apres strictement positif.
	DispoNumerateur(ctx context.Context, annee, mois int, classe string) (int, error)

	// TotauxProfit renvoie les ventes (sortie/vente × prix_vente) et les achats
	// (entree/achat × prix_achat) de la période, NULL comptés à zéro.
	TotauxProfit(ctx context.Context, annee, mois int, classe string) (ventes, achats decimal.Decimal, err error)

	// EtatStockShare histogramme des états de stock du mois ym ("YYYY-MM"),
	// produits actifs, trié par effectif décroissant puis libellé croissant.
	EtatStockShare(ctx context.Context, ym, classe string) ([]dto.EtatStockItem, error)

	// MouvementHist histogramme (nature, sens) de la période, produits actifs.
	MouvementHist(ctx context.Context, annee, mois int, classe string) ([]dto.MouvementHistItem, error)

	// TableauMensuel tableau synthétique du mois ym, mois précédent ymPrec.
	TableauMensuel(ctx context.Context, ym, ymPrec string, annee, mois int, classe string) ([]dto.TableauMensuelRow, error)

	// Mouvements navigateur de mouvements sur tb_dashboard (filtre déjà validé).
	Mouvements(ctx context.Context, f dto.MouvementsFiltre) ([]dto.MouvementDashboardRow, error)

	// FiltresMouvements valeurs distinctes de classe et cible observées sur la plage.
	FiltresMouvements(ctx context.Context, dateFrom, dateTo string) (classes, cibles []string, err error)
}
