package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Toutes les graphies de « pas de filtre » doivent converger vers la même
// sentinelle, appliquée uniformément par toutes les agrégations.
func TestNormaliserClasse_Sentinelle(t *testing.T) {
	for _, brut := range []string{"", "ALL", "all", " ALL ", " all ", "Tout", "tout"} {
		assert.Equal(t, ClasseTout, NormaliserClasse(brut), "graphie %q", brut)
	}
}

// Une vraie classe est renvoyée telle quelle, nettoyée des espaces.
func TestNormaliserClasse_ClasseReelle(t *testing.T) {
	assert.Equal(t, "Cardio", NormaliserClasse("Cardio"))
	assert.Equal(t, "Cardio", NormaliserClasse("  Cardio "))
	assert.Equal(t, "Antibiotique", NormaliserClasse("Antibiotique"))
}

// Le navigateur de mouvements utilise nil comme sentinelle : graphie
// différente, effet identique.
func TestNormaliserFiltreOptionnel(t *testing.T) {
	assert.Nil(t, NormaliserFiltreOptionnel(""))
	assert.Nil(t, NormaliserFiltreOptionnel("ALL"))
	assert.Nil(t, NormaliserFiltreOptionnel(" all "))

	v := NormaliserFiltreOptionnel("Adulte")
	require.NotNil(t, v)
	assert.Equal(t, "Adulte", *v)
}

// Une colonne hors allow-list retombe sur le tri par défaut, sans erreur.
func TestNormaliserTri_ColonneInconnue(t *testing.T) {
	col, dir := NormaliserTri("DROP TABLE", "desc")
	assert.Equal(t, TriParDefaut, col)
	assert.Equal(t, "desc", dir)

	col, dir = NormaliserTri("quantite", "asc")
	assert.Equal(t, "quantite", col)
	assert.Equal(t, "asc", dir)
}

// Tout sens autre que asc retombe sur desc.
func TestNormaliserTri_Sens(t *testing.T) {
	_, dir := NormaliserTri("date_mvt", "ASC")
	assert.Equal(t, "desc", dir)
	_, dir = NormaliserTri("date_mvt", "n'importe quoi")
	assert.Equal(t, "desc", dir)
	_, dir = NormaliserTri("date_mvt", "asc")
	assert.Equal(t, "asc", dir)
}

// Le mois précédent de janvier est décembre de l'année d'avant.
func TestYM(t *testing.T) {
	ym, ymPrec := YM(2025, 3)
	assert.Equal(t, "2025-03", ym)
	assert.Equal(t, "2025-02", ymPrec)

	ym, ymPrec = YM(2025, 1)
	assert.Equal(t, "2025-01", ym)
	assert.Equal(t, "2024-12", ymPrec)
}
