package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdiagne/pharmacie-api/internal/application/catalogue"
	"github.com/mdiagne/pharmacie-api/internal/application/dashboard"
	"github.com/mdiagne/pharmacie-api/internal/application/mouvement"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	DashboardUC *dashboard.UseCase
	CatalogueUC *catalogue.UseCase
	MouvementUC *mouvement.UseCase
}

// Router enregistre les routes de l'API (mêmes chemins que le front existant).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard
	dash := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.CatalogueUC)
	dash.Get("/classes", dashboardHandler.Classes)
	dash.Get("/kpis", dashboardHandler.KPIs)
	dash.Get("/etat_stock_share", dashboardHandler.EtatStockShare)
	dash.Get("/movement_hist", dashboardHandler.MouvementHist)
	dash.Get("/tableau_mensuel", dashboardHandler.TableauMensuel)
	dash.Get("/movements", dashboardHandler.Mouvements)
	dash.Get("/movements/filters", dashboardHandler.MouvementsFiltres)
	dash.Get("/list_products", dashboardHandler.ListProducts)

	// Catalogue produits. La route paramétrée /:code est enregistrée en
	// dernier pour ne pas capter insert_prod/edit_products.
	products := api.Group("/products")
	produitHandler := NewProduitHandler(deps.CatalogueUC)
	products.Post("/insert_prod", produitHandler.Create)
	products.Get("/edit_products", produitHandler.ListEdition)
	products.Put("/edit_products", produitHandler.BulkUpdate)
	products.Get("/:code", produitHandler.GetActif)

	// Journal de stock
	mouvementHandler := NewMouvementHandler(deps.MouvementUC)
	api.Post("/mouvements", mouvementHandler.Create)
	movements := api.Group("/movements")
	movements.Get("/edit", mouvementHandler.ListEdition)
	movements.Put("/edit", mouvementHandler.BulkUpdate)
}
