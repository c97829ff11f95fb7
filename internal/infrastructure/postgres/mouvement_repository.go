package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

var _ repository.MouvementRepository = (*MouvementRepo)(nil)

const tableMouvements = `"0_mouvement_stock"`

// MouvementRepo implémentation du port MouvementRepository sur PostgreSQL (pool ou tx).
type MouvementRepo struct {
	q Querier
}

// NewMouvementRepository construit l'adaptateur du journal de stock. Passer pool ou tx (Querier).
func NewMouvementRepository(q Querier) *MouvementRepo {
	return &MouvementRepo{q: q}
}

// Create insère un mouvement. id (auto-incrément) et stock_apres (recalcul en
// base) ne figurent pas dans l'INSERT.
func (r *MouvementRepo) Create(ctx context.Context, m *entity.Mouvement) error {
	query := `
		INSERT INTO ` + tableMouvements + ` (date_mvt, code_prod, type_mvt, mouvement, quantite, commentaire)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.DateMvt, m.CodeProd, m.TypeMvt, m.Mouvement, m.Quantite, m.Commentaire,
	)
	if err != nil {
		return fmt.Errorf("insert mouvement: %w", err)
	}
	return nil
}

// ListByProduitJour renvoie les mouvements d'un produit sur [debut, fin),
// triés par id croissant.
func (r *MouvementRepo) ListByProduitJour(ctx context.Context, codeProd string, debut, fin time.Time) ([]dto.MouvementEditionRow, error) {
	query := `
		SELECT id, date_mvt, code_prod, type_mvt, mouvement, quantite, commentaire
		FROM ` + tableMouvements + `
		WHERE code_prod = $1
		  AND date_mvt >= $2
		  AND date_mvt < $3
		ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, codeProd, debut, fin)
	if err != nil {
		return nil, fmt.Errorf("list mouvements jour: %w", err)
	}
	defer rows.Close()

	var list []dto.MouvementEditionRow
	for rows.Next() {
		var m dto.MouvementEditionRow
		if err := rows.Scan(&m.ID, &m.DateMvt, &m.CodeProd, &m.TypeMvt, &m.Mouvement, &m.Quantite, &m.Commentaire); err != nil {
			return nil, fmt.Errorf("scan mouvement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ApplyPatch construit le SET à partir des seuls champs fournis et l'applique
// par id. Renvoie le nombre de lignes touchées (0 si l'id n'existe pas).
func (r *MouvementRepo) ApplyPatch(ctx context.Context, p dto.MouvementPatch) (int64, error) {
	cols, vals := p.Assignations()
	if len(cols) == 0 {
		return 0, nil
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	vals = append(vals, p.ID)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		tableMouvements, strings.Join(sets, ", "), len(vals))
	cmd, err := r.q.Exec(ctx, query, vals...)
	if err != nil {
		return 0, fmt.Errorf("patch mouvement %d: %w", p.ID, err)
	}
	return cmd.RowsAffected(), nil
}
