package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound             = errors.New("ressource introuvable")
	ErrDuplicate            = errors.New("ressource dupliquée")
	ErrConflict             = errors.New("conflit avec l'état actuel")
	ErrInvalidInput         = errors.New("entrée invalide")
	ErrProduitInactif       = errors.New("produit inactif")
	ErrMouvementNonAutorise = errors.New("mouvement non autorisé")
)
