package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Natures de mouvement autorisées, par opération. La saisie accepte les
// ajustements signés ; l'édition reprend l'ajustement simple historique.
// Les deux listes sont volontairement distinctes (voir DESIGN.md).
var (
	MouvementsSaisie = map[string]struct{}{
		"achat": {}, "vente": {}, "perte": {}, "peremption": {}, "don": {},
		"ajustement positif": {}, "ajustement negatif": {},
	}
	MouvementsEdition = map[string]struct{}{
		"achat": {}, "vente": {}, "perte": {}, "peremption": {}, "don": {},
		"ajustement": {},
	}
)

// MouvementAutorise vérifie qu'une nature appartient à la liste donnée.
func MouvementAutorise(liste map[string]struct{}, mouvement string) bool {
	_, ok := liste[mouvement]
	return ok
}

// MouvementCreate corps de POST /api/mouvements.
// L'utilisateur ne saisit pas la quantité : 1 par défaut.
type MouvementCreate struct {
	DateMvt     string           `json:"date_mvt"` // YYYY-MM-DD
	CodeProd    string           `json:"code_prod"`
	TypeMvt     string           `json:"type_mvt"` // entree | sortie
	Mouvement   string           `json:"mouvement"`
	Quantite    *decimal.Decimal `json:"quantite"`
	Commentaire *string          `json:"commentaire"`
}

// MouvementPatch patch partiel d'un mouvement : id obligatoire, seuls les
// champs non nil sont appliqués.
type MouvementPatch struct {
	ID          int64            `json:"id"`
	DateMvt     *string          `json:"date_mvt"`
	Quantite    *decimal.Decimal `json:"quantite"`
	TypeMvt     *string          `json:"type_mvt"`
	Mouvement   *string          `json:"mouvement"`
	Commentaire *string          `json:"commentaire"`
}

// DateMvtTime parse la date du patch si fournie.
func (p MouvementPatch) DateMvtTime() (*time.Time, error) {
	if p.DateMvt == nil {
		return nil, nil
	}
	t, err := ParseDate(*p.DateMvt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Assignations déroule les champs optionnels déclarés et renvoie les colonnes
// à modifier avec leurs valeurs. La date doit avoir été validée en amont :
// un patch dont la date ne parse pas est ignoré champ par champ.
func (p MouvementPatch) Assignations() (cols []string, vals []any) {
	add := func(col string, val any) {
		cols = append(cols, col)
		vals = append(vals, val)
	}
	if t, err := p.DateMvtTime(); err == nil && t != nil {
		add("date_mvt", *t)
	}
	if p.Quantite != nil {
		add("quantite", *p.Quantite)
	}
	if p.TypeMvt != nil {
		add("type_mvt", *p.TypeMvt)
	}
	if p.Mouvement != nil {
		add("mouvement", *p.Mouvement)
	}
	if p.Commentaire != nil {
		add("commentaire", *p.Commentaire)
	}
	return cols, vals
}

// EstVide indique qu'aucun champ modifiable n'est fourni.
func (p MouvementPatch) EstVide() bool {
	cols, _ := p.Assignations()
	return len(cols) == 0
}

// MouvementEditionRow ligne de GET /api/movements/edit (pas de stock_apres :
// il est recalculé côté base et ne s'édite pas).
type MouvementEditionRow struct {
	ID          int64           `json:"id"`
	DateMvt     time.Time       `json:"date_mvt"`
	CodeProd    string          `json:"code_prod"`
	TypeMvt     string          `json:"type_mvt"`
	Mouvement   string          `json:"mouvement"`
	Quantite    decimal.Decimal `json:"quantite"`
	Commentaire *string         `json:"commentaire"`
}
