package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sens d'un mouvement de stock.
const (
	TypeEntree = "entree"
	TypeSortie = "sortie"
)

// TypeMvtValide vérifie le sens du mouvement.
func TypeMvtValide(s string) bool {
	return s == TypeEntree || s == TypeSortie
}

// Mouvement ligne du journal de stock (table 0_mouvement_stock).
// L'id est auto-incrémenté et stock_apres est maintenu côté base : aucun des
// deux n'est écrit par ce système.
type Mouvement struct {
	ID          int64            `json:"id"`
	DateMvt     time.Time        `json:"date_mvt"`
	CodeProd    string           `json:"code_prod"`
	TypeMvt     string           `json:"type_mvt"`
	Mouvement   string           `json:"mouvement"`
	Quantite    decimal.Decimal  `json:"quantite"`
	Commentaire *string          `json:"commentaire"`
	StockApres  *decimal.Decimal `json:"stock_apres,omitempty"`
}
