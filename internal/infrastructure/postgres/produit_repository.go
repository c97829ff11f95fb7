package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mdiagne/pharmacie-api/internal/application/dto"
	"github.com/mdiagne/pharmacie-api/internal/domain"
	"github.com/mdiagne/pharmacie-api/internal/domain/entity"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

var _ repository.ProduitRepository = (*ProduitRepo)(nil)

// Les tables héritées commencent par 0_ : identifiants entre guillemets obligatoires.
const tableProduits = `"0_products"`

// ProduitRepo implémentation du port ProduitRepository sur PostgreSQL (pool ou tx).
type ProduitRepo struct {
	q Querier
}

// NewProduitRepository construit l'adaptateur de persistance du catalogue. Passer pool ou tx (Querier).
func NewProduitRepository(q Querier) *ProduitRepo {
	return &ProduitRepo{q: q}
}

const colonnesProduit = `code, produit, forme, dosage, classe, cible, unite, prix_achat, prix_vente, stock_actuel, date_creation, statut`

// Create insère un nouveau produit. Collision de clé primaire sur code -> ErrDuplicate.
func (r *ProduitRepo) Create(ctx context.Context, p *entity.Produit) error {
	query := `
		INSERT INTO ` + tableProduits + ` (` + colonnesProduit + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.Code, p.Produit, p.Forme, p.Dosage, p.Classe, p.Cible, p.Unite,
		p.PrixAchat, p.PrixVente, p.StockActuel, p.DateCreation, p.Statut,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produit: %w", err)
	}
	return nil
}

// GetByCode renvoie le produit ou (nil, nil) s'il n'existe pas.
func (r *ProduitRepo) GetByCode(ctx context.Context, code string) (*entity.Produit, error) {
	query := `
		SELECT ` + colonnesProduit + `
		FROM ` + tableProduits + `
		WHERE code = $1
		LIMIT 1`
	var p entity.Produit
	err := r.q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Produit, &p.Forme, &p.Dosage, &p.Classe, &p.Cible, &p.Unite,
		&p.PrixAchat, &p.PrixVente, &p.StockActuel, &p.DateCreation, &p.Statut,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produit: %w", err)
	}
	return &p, nil
}

// List renvoie tout le catalogue trié par nom de produit.
func (r *ProduitRepo) List(ctx context.Context) ([]entity.Produit, error) {
	query := `
		SELECT ` + colonnesProduit + `
		FROM ` + tableProduits + `
		ORDER BY produit ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list produits: %w", err)
	}
	defer rows.Close()

	var list []entity.Produit
	for rows.Next() {
		var p entity.Produit
		if err := rows.Scan(
			&p.Code, &p.Produit, &p.Forme, &p.Dosage, &p.Classe, &p.Cible, &p.Unite,
			&p.PrixAchat, &p.PrixVente, &p.StockActuel, &p.DateCreation, &p.Statut,
		); err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListEdition renvoie les colonnes éditables des `limit` premiers produits triés par code.
func (r *ProduitRepo) ListEdition(ctx context.Context, limit int) ([]dto.ProduitEditionRow, error) {
	query := `
		SELECT code, produit, unite, prix_achat, prix_vente, statut
		FROM ` + tableProduits + `
		ORDER BY code
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list produits édition: %w", err)
	}
	defer rows.Close()

	var list []dto.ProduitEditionRow
	for rows.Next() {
		var p dto.ProduitEditionRow
		if err := rows.Scan(&p.Code, &p.Produit, &p.Unite, &p.PrixAchat, &p.PrixVente, &p.Statut); err != nil {
			return nil, fmt.Errorf("scan produit édition: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ApplyPatch construit le SET à partir des seuls champs fournis et l'applique
// par égalité sur code. Renvoie le nombre de lignes touchées.
func (r *ProduitRepo) ApplyPatch(ctx context.Context, p dto.ProduitPatch) (int64, error) {
	cols, vals := p.Assignations()
	if len(cols) == 0 {
		return 0, nil
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	vals = append(vals, p.Code)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE code = $%d`,
		tableProduits, strings.Join(sets, ", "), len(vals))
	cmd, err := r.q.Exec(ctx, query, vals...)
	if err != nil {
		return 0, fmt.Errorf("patch produit %s: %w", p.Code, err)
	}
	return cmd.RowsAffected(), nil
}
