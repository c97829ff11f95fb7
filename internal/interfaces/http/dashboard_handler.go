package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdiagne/pharmacie-api/internal/application/catalogue"
	"github.com/mdiagne/pharmacie-api/internal/application/dashboard"
	"github.com/mdiagne/pharmacie-api/internal/application/dto"
)

// DashboardHandler endpoints du module tableau de bord.
type DashboardHandler struct {
	uc        *dashboard.UseCase
	catalogue *catalogue.UseCase
}

// NewDashboardHandler construit le handler.
func NewDashboardHandler(uc *dashboard.UseCase, cat *catalogue.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, catalogue: cat}
}

// Classes godoc
// @Summary      Classes thérapeutiques distinctes du catalogue
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ClassesResponse
// @Router       /api/dashboard/classes [get]
func (h *DashboardHandler) Classes(c *fiber.Ctx) error {
	out, err := h.uc.Classes(c.Context())
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      KPIs du mois : produits mouvementés, taux de disponibilité, bénéfice net
// @Tags         dashboard
// @Produce      json
// @Param        annee   query  int     true   "Année (>= 2000)"
// @Param        mois    query  int     true   "Mois (1-12)"
// @Param        classe  query  string  false  "Classe ou Tout/ALL"
// @Success      200  {object}  dto.KPIResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	annee, mois, err := periodeRequete(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.KPIs(c.Context(), annee, mois, c.Query("classe", "Tout"))
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// EtatStockShare godoc
// @Summary      Répartition des états de stock du mois
// @Tags         dashboard
// @Produce      json
// @Param        annee   query  int     true   "Année (>= 2000)"
// @Param        mois    query  int     true   "Mois (1-12)"
// @Param        classe  query  string  false  "Classe ou Tout/ALL"
// @Success      200  {object}  dto.EtatStockShareResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/etat_stock_share [get]
func (h *DashboardHandler) EtatStockShare(c *fiber.Ctx) error {
	annee, mois, err := periodeRequete(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.EtatStockShare(c.Context(), annee, mois, c.Query("classe", "ALL"))
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// MouvementHist godoc
// @Summary      Histogramme des mouvements par nature et sens
// @Tags         dashboard
// @Produce      json
// @Param        annee   query  int     true   "Année (>= 2000)"
// @Param        mois    query  int     true   "Mois (1-12)"
// @Param        classe  query  string  false  "Classe ou Tout/ALL"
// @Success      200  {object}  dto.MouvementHistResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movement_hist [get]
func (h *DashboardHandler) MouvementHist(c *fiber.Ctx) error {
	annee, mois, err := periodeRequete(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.MouvementHist(c.Context(), annee, mois, c.Query("classe", "ALL"))
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// TableauMensuel godoc
// @Summary      Tableau synthétique mensuel par produit
// @Tags         dashboard
// @Produce      json
// @Param        annee   query  int     true   "Année (>= 2000)"
// @Param        mois    query  int     true   "Mois (1-12)"
// @Param        classe  query  string  false  "Classe ou Tout/ALL"
// @Success      200  {object}  dto.TableauMensuelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/tableau_mensuel [get]
func (h *DashboardHandler) TableauMensuel(c *fiber.Ctx) error {
	annee, mois, err := periodeRequete(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.TableauMensuel(c.Context(), annee, mois, c.Query("classe", "ALL"))
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// Mouvements godoc
// @Summary      Navigateur de mouvements (recherche, tri, filtres)
// @Tags         dashboard
// @Produce      json
// @Param        date_from  query  string  true   "YYYY-MM-DD"
// @Param        date_to    query  string  true   "YYYY-MM-DD"
// @Param        q          query  string  false  "Recherche sur nom_produit"
// @Param        classe     query  string  false  "Classe ou ALL"
// @Param        cible      query  string  false  "Cible ou ALL"
// @Param        sort_by    query  string  false  "Colonne de tri"  default(date_mvt)
// @Param        sort_dir   query  string  false  "asc ou desc"     default(desc)
// @Param        limit      query  int     false  "1 à 20000"       default(5000)
// @Success      200  {object}  dto.MouvementsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movements [get]
func (h *DashboardHandler) Mouvements(c *fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "date_from et date_to sont requis",
		})
	}

	limit := c.QueryInt("limit", dashboard.LimiteDefaut)
	if limit < 1 || limit > dashboard.LimiteMax {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "limit doit être entre 1 et 20000",
		})
	}

	var q *string
	if s := c.Query("q"); s != "" {
		q = &s
	}

	f := dto.MouvementsFiltre{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Q:        q,
		Classe:   dashboard.NormaliserFiltreOptionnel(c.Query("classe")),
		Cible:    dashboard.NormaliserFiltreOptionnel(c.Query("cible")),
		SortBy:   c.Query("sort_by", dashboard.TriParDefaut),
		SortDir:  c.Query("sort_dir", dashboard.SensParDefaut),
		Limit:    limit,
	}

	out, err := h.uc.Mouvements(c.Context(), f)
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// MouvementsFiltres godoc
// @Summary      Valeurs de classe et cible observées sur la plage de dates
// @Tags         dashboard
// @Produce      json
// @Param        date_from  query  string  true  "YYYY-MM-DD"
// @Param        date_to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.FiltresResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movements/filters [get]
func (h *DashboardHandler) MouvementsFiltres(c *fiber.Ctx) error {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "date_from et date_to sont requis",
		})
	}
	out, err := h.uc.FiltresMouvements(c.Context(), dateFrom, dateTo)
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Catalogue complet avec en-tête de colonnes
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ListeProduitsResponse
// @Router       /api/dashboard/list_products [get]
func (h *DashboardHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.catalogue.Lister(c.Context())
	if err != nil {
		return erreurHTTP(c, err)
	}
	return c.JSON(out)
}
