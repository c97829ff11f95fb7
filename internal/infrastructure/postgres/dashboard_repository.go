package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo requêtes de lecture seule pour le tableau de bord.
// Le paramètre classe arrive normalisé : 'Tout' désactive le filtre, motif SQL
// uniforme ($n = 'Tout' OR classe = $n) dans toutes les requêtes.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construit l'adaptateur de reporting.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Classes renvoie les classes distinctes non vides du catalogue.
func (r *DashboardRepo) Classes(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT classe
		FROM ` + tableProduits + `
		WHERE classe IS NOT NULL AND classe <> ''
		ORDER BY classe`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Classes: %w", err)
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("dashboard.Classes scan: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// RowsPeriode compte les lignes de la période, sans filtre de classe (diagnostic).
func (r *DashboardRepo) RowsPeriode(ctx context.Context, annee, mois int) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM tb_dashboard d
	WHERE EXTRACT(YEAR FROM d.date_mvt) = $1
	  AND EXTRACT(MONTH FROM d.date_mvt) = $2`
	var n int
	if err := r.q.QueryRow(ctx, query, annee, mois).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.RowsPeriode: %w", err)
	}
	return n, nil
}

// NbProduits compte les produits distincts mouvementés dans la période.
func (r *DashboardRepo) NbProduits(ctx context.Context, annee, mois int, classe string) (int, error) {
	const query = `
	SELECT COUNT(DISTINCT d.code_produit)
	FROM tb_dashboard d
	WHERE EXTRACT(YEAR FROM d.date_mvt) = $1
	  AND EXTRACT(MONTH FROM d.date_mvt) = $2
	  AND ($3 = 'Tout' OR d.classe = $3)`
	var n int
	if err := r.q.QueryRow(ctx, query, annee, mois, classe).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.NbProduits: %w", err)
	}
	return n, nil
}

// DispoDenominateur compte les produits actifs (filtrés par classe).
func (r *DashboardRepo) DispoDenominateur(ctx context.Context, classe string) (int, error) {
	query := `
	SELECT COUNT(DISTINCT p.code)
	FROM ` + tableProduits + ` p
	WHERE p.statut = 'Actif'
	  AND ($1 = 'Tout' OR p.classe = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, classe).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.DispoDenominateur: %w", err)
	}
	return n, nil
}

// DispoNumerateur compte les produits actifs dont le dernier mouvement du mois
// laisse un stock positif. « Dernier » = id de mouvement le plus élevé, la
// date seule ne départage pas les saisies d'un même jour.
func (r *DashboardRepo) DispoNumerateur(ctx context.Context, annee, mois int, classe string) (int, error) {
	query := `
	WITH last_mvt AS (
	    SELECT d.code_produit, MAX(d.id_mvt_source) AS last_id
	    FROM tb_dashboard d
	    WHERE EXTRACT(YEAR FROM d.date_mvt) = $1
	      AND EXTRACT(MONTH FROM d.date_mvt) = $2
	      AND ($3 = 'Tout' OR d.classe = $3)
	    GROUP BY d.code_produit
	)
	SELECT COUNT(*)
	FROM last_mvt lm
	JOIN tb_dashboard d ON d.id_mvt_source = lm.last_id
	JOIN ` + tableProduits + ` p ON p.code = lm.code_produit
	WHERE p.statut = 'Actif'
	  AND ($3 = 'Tout' OR p.classe = $3)
	  AND COALESCE(d.stock_apres, 0) > 0`
	var n int
	if err := r.q.QueryRow(ctx, query, annee, mois, classe).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.DispoNumerateur: %w", err)
	}
	return n, nil
}

// TotauxProfit totalise ventes et achats de la période. Seuls sortie/vente et
// entree/achat participent au bénéfice ; les NULL comptent pour zéro.
func (r *DashboardRepo) TotauxProfit(ctx context.Context, annee, mois int, classe string) (ventes, achats decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(
	        CASE
	            WHEN d.type_mouvement = 'sortie' AND d.mouvement = 'vente'
	            THEN COALESCE(d.quantite, 0) * COALESCE(d.prix_vente, 0)
	            ELSE 0
	        END
	    ), 0) AS total_ventes,
	    COALESCE(SUM(
	        CASE
	            WHEN d.type_mouvement = 'entree' AND d.mouvement = 'achat'
	            THEN COALESCE(d.quantite, 0) * COALESCE(d.prix_achat, 0)
	            ELSE 0
	        END
	    ), 0) AS total_achats
	FROM tb_dashboard d
	WHERE EXTRACT(YEAR FROM d.date_mvt) = $1
	  AND EXTRACT(MONTH FROM d.date_mvt) = $2
	  AND ($3 = 'Tout' OR d.classe = $3)`
	if err = r.q.QueryRow(ctx, query, annee, mois, classe).Scan(&ventes, &achats); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("dashboard.TotauxProfit: %w", err)
	}
	return ventes, achats, nil
}

// EtatStockShare histogramme des états de stock du mois ym, produits actifs.
// Le mois de la photo est comparé sur son préfixe "YYYY-MM" (colonne stockée
// tantôt en date, tantôt déjà tronquée). Tri : effectif décroissant puis
// libellé croissant pour un ordre déterministe.
func (r *DashboardRepo) EtatStockShare(ctx context.Context, ym, classe string) ([]dto.EtatStockItem, error) {
	query := `
	SELECT esm.etat, COUNT(*) AS nb
	FROM etat_stock_mensuel esm
	JOIN ` + tableProduits + ` p ON p.code = esm.code_prod
	WHERE LEFT(esm.mois::text, 7) = $1
	  AND p.statut = 'Actif'
	  AND ($2 = 'Tout' OR p.classe = $2)
	GROUP BY esm.etat
	ORDER BY nb DESC, esm.etat ASC NULLS LAST`
	rows, err := r.q.Query(ctx, query, ym, classe)
	if err != nil {
		return nil, fmt.Errorf("dashboard.EtatStockShare: %w", err)
	}
	defer rows.Close()

	var items []dto.EtatStockItem
	for rows.Next() {
		var etat *string
		var nb int
		if err := rows.Scan(&etat, &nb); err != nil {
			return nil, fmt.Errorf("dashboard.EtatStockShare scan: %w", err)
		}
		name := "Non défini"
		if etat != nil && *etat != "" {
			name = *etat
		}
		items = append(items, dto.EtatStockItem{Name: name, Value: nb})
	}
	return items, rows.Err()
}

// MouvementHist compte les mouvements par (nature, sens) pour la période,
// produits actifs, sens restreint à entree/sortie, nature non vide.
func (r *DashboardRepo) MouvementHist(ctx context.Context, annee, mois int, classe string) ([]dto.MouvementHistItem, error) {
	query := `
	SELECT d.mouvement, d.type_mouvement, COUNT(*) AS nb
	FROM tb_dashboard d
	JOIN ` + tableProduits + ` p ON p.code = d.code_produit
	WHERE EXTRACT(YEAR FROM d.date_mvt) = $1
	  AND EXTRACT(MONTH FROM d.date_mvt) = $2
	  AND p.statut = 'Actif'
	  AND ($3 = 'Tout' OR p.classe = $3)
	  AND d.mouvement IS NOT NULL AND d.mouvement <> ''
	  AND d.type_mouvement IN ('entree', 'sortie')
	GROUP BY d.mouvement, d.type_mouvement
	ORDER BY d.mouvement, d.type_mouvement`
	rows, err := r.q.Query(ctx, query, annee, mois, classe)
	if err != nil {
		return nil, fmt.Errorf("dashboard.MouvementHist: %w", err)
	}
	defer rows.Close()

	var items []dto.MouvementHistItem
	for rows.Next() {
		var it dto.MouvementHistItem
		if err := rows.Scan(&it.Mouvement, &it.Type, &it.Value); err != nil {
			return nil, fmt.Errorf("dashboard.MouvementHist scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// TableauMensuel tableau synthétique : la photo courante mène la jointure
// (produits sans photo courante absents du résultat, par choix), la photo du
// mois précédent fournit le stock initial, le sous-select les entrées/sorties
// du mois.
func (r *DashboardRepo) TableauMensuel(ctx context.Context, ym, ymPrec string, annee, mois int, classe string) ([]dto.TableauMensuelRow, error) {
	query := `
	SELECT
	    p.produit,
	    p.dosage,
	    p.forme,
	    p.unite,
	    p.cible,
	    prev.stock                  AS quantite_initiale,
	    COALESCE(mv.qte_entree, 0)  AS quantite_entree,
	    COALESCE(mv.qte_sortie, 0)  AS quantite_sortie,
	    cur.stock                   AS sdu,
	    cur.cmm                     AS cmm,
	    cur.etat                    AS etat_stock
	FROM etat_stock_mensuel cur
	JOIN ` + tableProduits + ` p ON p.code = cur.code_prod
	LEFT JOIN etat_stock_mensuel prev
	  ON prev.code_prod = cur.code_prod
	 AND (LEFT(prev.mois::text, 7) = $2 OR prev.mois::text = $2)
	LEFT JOIN (
	    SELECT
	        d.code_produit,
	        SUM(CASE WHEN d.type_mouvement = 'entree' THEN d.quantite ELSE 0 END) AS qte_entree,
	        SUM(CASE WHEN d.type_mouvement = 'sortie' THEN d.quantite ELSE 0 END) AS qte_sortie
	    FROM tb_dashboard d
	    WHERE EXTRACT(YEAR FROM d.date_mvt) = $3
	      AND EXTRACT(MONTH FROM d.date_mvt) = $4
	    GROUP BY d.code_produit
	) mv ON mv.code_produit = cur.code_prod
	WHERE (LEFT(cur.mois::text, 7) = $1 OR cur.mois::text = $1)
	  AND ($5 = 'Tout' OR p.classe = $5)
	ORDER BY p.produit ASC`
	rows, err := r.q.Query(ctx, query, ym, ymPrec, annee, mois, classe)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TableauMensuel: %w", err)
	}
	defer rows.Close()

	var list []dto.TableauMensuelRow
	for rows.Next() {
		var t dto.TableauMensuelRow
		if err := rows.Scan(
			&t.Produit, &t.Dosage, &t.Forme, &t.Unite, &t.Cible,
			&t.QuantiteInitiale, &t.QuantiteEntree, &t.QuantiteSortie,
			&t.SDU, &t.CMM, &t.EtatStock,
		); err != nil {
			return nil, fmt.Errorf("dashboard.TableauMensuel scan: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Mouvements navigateur sur tb_dashboard. SortBy/SortDir sont déjà ramenés à
// l'allow-list par le usecase : seuls des identifiants sûrs sont interpolés
// dans le ORDER BY, tout le reste est paramétré.
func (r *DashboardRepo) Mouvements(ctx context.Context, f dto.MouvementsFiltre) ([]dto.MouvementDashboardRow, error) {
	query := fmt.Sprintf(`
	SELECT
	    date_mvt, nom_produit, forme, dosage, classe, cible, unite, prix_achat,
	    prix_vente, type_mouvement, mouvement, quantite, stock_apres, commentaire
	FROM tb_dashboard
	WHERE date_mvt BETWEEN $1 AND $2
	  AND ($3::text IS NULL OR nom_produit LIKE '%%' || $3 || '%%')
	  AND ($4::text IS NULL OR classe = $4)
	  AND ($5::text IS NULL OR cible = $5)
	ORDER BY %s %s
	LIMIT $6`, f.SortBy, f.SortDir)

	rows, err := r.q.Query(ctx, query, f.DateFrom, f.DateTo, f.Q, f.Classe, f.Cible, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Mouvements: %w", err)
	}
	defer rows.Close()

	var list []dto.MouvementDashboardRow
	for rows.Next() {
		var m dto.MouvementDashboardRow
		if err := rows.Scan(
			&m.DateMvt, &m.NomProduit, &m.Forme, &m.Dosage, &m.Classe, &m.Cible,
			&m.Unite, &m.PrixAchat, &m.PrixVente, &m.TypeMouvement, &m.Mouvement,
			&m.Quantite, &m.StockApres, &m.Commentaire,
		); err != nil {
			return nil, fmt.Errorf("dashboard.Mouvements scan: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// FiltresMouvements valeurs distinctes non vides de classe et cible sur la plage.
func (r *DashboardRepo) FiltresMouvements(ctx context.Context, dateFrom, dateTo string) (classes, cibles []string, err error) {
	distinct := func(col string) ([]string, error) {
		query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s
		FROM tb_dashboard
		WHERE date_mvt BETWEEN $1 AND $2
		  AND %[1]s IS NOT NULL AND %[1]s <> ''
		ORDER BY %[1]s`, col)
		rows, err := r.q.Query(ctx, query, dateFrom, dateTo)
		if err != nil {
			return nil, fmt.Errorf("dashboard.FiltresMouvements %s: %w", col, err)
		}
		defer rows.Close()
		var vals []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, fmt.Errorf("dashboard.FiltresMouvements scan %s: %w", col, err)
			}
			vals = append(vals, v)
		}
		return vals, rows.Err()
	}

	if classes, err = distinct("classe"); err != nil {
		return nil, nil, err
	}
	if cibles, err = distinct("cible"); err != nil {
		return nil, nil, err
	}
	return classes, cibles, nil
}
