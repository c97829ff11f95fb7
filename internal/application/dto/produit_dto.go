package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
)

// ProduitIn corps de POST /api/products/insert_prod.
type ProduitIn struct {
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
	DateCreation *string          `json:"date_creation"` // YYYY-MM-DD
	Statut       string           `json:"statut"`
}

// ProduitPatch patch partiel d'un produit : code obligatoire, seuls les champs
// non nil sont appliqués.
type ProduitPatch struct {
	Code      string           `json:"code"`
	Produit   *string          `json:"produit"`
	Unite     *string          `json:"unite"`
	PrixAchat *decimal.Decimal `json:"prix_achat"`
	PrixVente *decimal.Decimal `json:"prix_vente"`
	Statut    *string          `json:"statut"`
}

// Assignations déroule les champs optionnels déclarés et renvoie les colonnes
// à modifier avec leurs valeurs, dans le même ordre. Un patch sans champ
// effectif renvoie des listes vides ("non fourni => inchangé").
func (p ProduitPatch) Assignations() (cols []string, vals []any) {
	add := func(col string, val any) {
		cols = append(cols, col)
		vals = append(vals, val)
	}
	if p.Produit != nil {
		add("produit", *p.Produit)
	}
	if p.Unite != nil {
		add("unite", *p.Unite)
	}
	if p.PrixAchat != nil {
		add("prix_achat", *p.PrixAchat)
	}
	if p.PrixVente != nil {
		add("prix_vente", *p.PrixVente)
	}
	if p.Statut != nil {
		add("statut", *p.Statut)
	}
	return cols, vals
}

// EstVide indique qu'aucun champ modifiable n'est fourni.
func (p ProduitPatch) EstVide() bool {
	cols, _ := p.Assignations()
	return len(cols) == 0
}

// ProduitEditionRow ligne compacte de GET /api/products/edit_products.
type ProduitEditionRow struct {
	Code      string           `json:"code"`
	Produit   string           `json:"produit"`
	Unite     *string          `json:"unite"`
	PrixAchat *decimal.Decimal `json:"prix_achat"`
	PrixVente *decimal.Decimal `json:"prix_vente"`
	Statut    string           `json:"statut"`
}

// ListeProduitsResponse réponse de GET /api/dashboard/list_products.
type ListeProduitsResponse struct {
	Columns []string         `json:"columns"`
	Rows    []entity.Produit `json:"rows"`
}
