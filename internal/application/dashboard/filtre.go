package dashboard

import "strings"

// ClasseTout valeur canonique « aucune restriction de classe ».
const ClasseTout = "Tout"

// NormaliserClasse ramène un filtre de classe brut à sa forme canonique :
// vide, "ALL" (toute casse) ou "Tout" deviennent ClasseTout, toute autre
// chaîne est renvoyée nettoyée. Chaque requête d'agrégation passe par ici.
func NormaliserClasse(classe string) string {
	c := strings.TrimSpace(classe)
	if c == "" || strings.EqualFold(c, "ALL") || strings.EqualFold(c, ClasseTout) {
		return ClasseTout
	}
	return c
}

// NormaliserFiltreOptionnel variante du navigateur de mouvements : la
// sentinelle y est nil (absence de filtre) plutôt que "Tout", même effet.
func NormaliserFiltreOptionnel(val string) *string {
	v := strings.TrimSpace(val)
	if v == "" || strings.EqualFold(v, "ALL") || strings.EqualFold(v, ClasseTout) {
		return nil
	}
	return &v
}
