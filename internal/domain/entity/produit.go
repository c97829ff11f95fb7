package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts possibles d'un produit au catalogue. Un produit inactif n'accepte
// plus de mouvements et sort du dénominateur de disponibilité.
const (
	StatutActif   = "Actif"
	StatutInactif = "Inactif"
)

// Produit ligne du catalogue (table 0_products). Le code est la clé primaire ;
// les champs optionnels sont des pointeurs car nullables en base.
type Produit struct {
	Code         string           `json:"code"`
	Produit      string           `json:"produit"`
	Forme        *string          `json:"forme"`
	Dosage       *string          `json:"dosage"`
	Classe       *string          `json:"classe"`
	Cible        *string          `json:"cible"`
	Unite        *string          `json:"unite"`
	PrixAchat    *decimal.Decimal `json:"prix_achat"`
	PrixVente    *decimal.Decimal `json:"prix_vente"`
	StockActuel  *int             `json:"stock_actuel"`
	DateCreation *time.Time       `json:"date_creation"`
	Statut       string           `json:"statut"`
}

// Actif indique si le produit accepte de nouveaux mouvements.
func (p Produit) Actif() bool {
	return p.Statut == StatutActif
}

// StatutValide vérifie qu'un statut appartient à l'énumération.
func StatutValide(s string) bool {
	return s == StatutActif || s == StatutInactif
}
