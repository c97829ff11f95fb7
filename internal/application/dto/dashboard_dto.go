package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassesResponse réponse de GET /api/dashboard/classes.
type ClassesResponse struct {
	Classes []string `json:"classes"`
}

// KPIDebug bloc de diagnostic exposé avec les KPIs. Sans signification métier,
// il sert à vérifier la période et le filtre reçus.
type KPIDebug struct {
	Annee       int             `json:"annee"`
	Mois        int             `json:"mois"`
	ClasseRecue string          `json:"classe_recue"`
	ClasseNorm  string          `json:"classe_norm"`
	RowsPeriode int             `json:"rows_period"`
	DispoNum    int             `json:"dispo_num"`
	DispoDenom  int             `json:"dispo_denom"`
	TotalVentes decimal.Decimal `json:"total_ventes"`
	TotalAchats decimal.Decimal `json:"total_achats"`
}

// KPIResponse réponse de GET /api/dashboard/kpis.
type KPIResponse struct {
	NbProduits        int             `json:"nb_produits"`
	TauxDisponibilite float64         `json:"taux_disponibilite"`
	BeneficeNet       decimal.Decimal `json:"benefice_net"`
	Debug             KPIDebug        `json:"debug"`
}

// EtatStockItem une barre de l'histogramme des états de stock.
type EtatStockItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// EtatStockShareResponse réponse de GET /api/dashboard/etat_stock_share.
type EtatStockShareResponse struct {
	YM     string          `json:"ym"`
	Classe string          `json:"classe"`
	Total  int             `json:"total"`
	Items  []EtatStockItem `json:"items"`
}

// MouvementHistItem une barre de l'histogramme (nature, sens).
type MouvementHistItem struct {
	Mouvement string `json:"mouvement"`
	Type      string `json:"type"`
	Value     int    `json:"value"`
}

// MouvementHistResponse réponse de GET /api/dashboard/movement_hist.
type MouvementHistResponse struct {
	Items []MouvementHistItem `json:"items"`
}

// TableauMensuelRow ligne du tableau synthétique mensuel. La quantité initiale
// vient de la photo du mois précédent (NULL si absente) ; sdu/cmm/etat de la
// photo courante.
type TableauMensuelRow struct {
	Produit          string           `json:"produit"`
	Dosage           *string          `json:"dosage"`
	Forme            *string          `json:"forme"`
	Unite            *string          `json:"unite"`
	Cible            *string          `json:"cible"`
	QuantiteInitiale *decimal.Decimal `json:"quantite_initiale"`
	QuantiteEntree   decimal.Decimal  `json:"quantite_entree"`
	QuantiteSortie   decimal.Decimal  `json:"quantite_sortie"`
	SDU              *decimal.Decimal `json:"sdu"`
	CMM              *decimal.Decimal `json:"cmm"`
	EtatStock        *string          `json:"etat_stock"`
}

// TableauMensuelResponse réponse de GET /api/dashboard/tableau_mensuel.
type TableauMensuelResponse struct {
	Data []TableauMensuelRow `json:"data"`
}

// MouvementsFiltre critères validés du navigateur de mouvements.
// Classe/Cible à nil signifie « pas de filtre » ; SortBy/SortDir sont déjà
// ramenés à l'allow-list.
type MouvementsFiltre struct {
	DateFrom string
	DateTo   string
	Q        *string
	Classe   *string
	Cible    *string
	SortBy   string
	SortDir  string
	Limit    int
}

// MouvementDashboardRow ligne de la vue tb_dashboard restituée par le
// navigateur de mouvements.
type MouvementDashboardRow struct {
	DateMvt       time.Time        `json:"date_mvt"`
	NomProduit    *string          `json:"nom_produit"`
	Forme         *string          `json:"forme"`
	Dosage        *string          `json:"dosage"`
	Classe        *string          `json:"classe"`
	Cible         *string          `json:"cible"`
	Unite         *string          `json:"unite"`
	PrixAchat     *decimal.Decimal `json:"prix_achat"`
	PrixVente     *decimal.Decimal `json:"prix_vente"`
	TypeMouvement *string          `json:"type_mouvement"`
	Mouvement     *string          `json:"mouvement"`
	Quantite      *decimal.Decimal `json:"quantite"`
	StockApres    *decimal.Decimal `json:"stock_apres"`
	Commentaire   *string          `json:"commentaire"`
}

// MouvementsResponse réponse de GET /api/dashboard/movements.
type MouvementsResponse struct {
	Items []MouvementDashboardRow `json:"items"`
	Limit int                     `json:"limit"`
}

// FiltresResponse réponse de GET /api/dashboard/movements/filters.
type FiltresResponse struct {
	Classes []string `json:"classes"`
	Cibles  []string `json:"cibles"`
}
