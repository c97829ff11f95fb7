package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdiagne/pharmacie-api/internal/application/catalogue"
	"github.com/mdiagne/pharmacie-api/internal/application/mouvement"
	"github.com/mdiagne/pharmacie-api/internal/domain/repository"
)

var _ catalogue.TxRunner = (*TxRunner)(nil)
var _ mouvement.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL : une
// transaction par lot, commit si le callback réussit, rollback sinon.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunProduits ouvre une transaction, exécute fn avec un repo produits lié à la
// tx, puis Commit ou Rollback.
func (r *TxRunner) RunProduits(ctx context.Context, fn func(produits repository.ProduitRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProduitRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMouvements ouvre une transaction, exécute fn avec un repo mouvements lié
// à la tx, puis Commit ou Rollback.
func (r *TxRunner) RunMouvements(ctx context.Context, fn func(mouvements repository.MouvementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMouvementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
