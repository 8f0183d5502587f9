package main

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/priceme/priceme/internal/config"
	"github.com/priceme/priceme/internal/db"
	"github.com/priceme/priceme/internal/migrations"
	"github.com/priceme/priceme/internal/seed"
)

type server struct {
	db *sql.DB
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Fatalf("failed to run startup seed: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seeded %d rows", stats.Inserts)
	}

	srv := &server{db: database}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", srv.handleHome)

	r.Get("/products", srv.handleProductsList)
	r.Get("/products/new", srv.handleProductNewForm)
	r.Post("/products", srv.handleProductCreate)
	r.Get("/products/export", srv.handleProductsExport)
	r.Get("/products/{id}", srv.handleProductDetail)
	r.Get("/products/{id}/edit", srv.handleProductEditForm)
	r.Post("/products/{id}", srv.handleProductUpdate)
	r.Post("/products/{id}/status", srv.handleProductStatus)
	r.Post("/products/{id}/delete", srv.handleProductDelete)

	r.Get("/materials", srv.handleMaterialsList)
	r.Post("/materials", srv.handleMaterialCreate)
	r.Post("/materials/{id}", srv.handleMaterialUpdate)
	r.Post("/materials/{id}/stock", srv.handleMaterialStockAdjust)

	r.Get("/settings", srv.handleSettingsForm)
	r.Post("/settings", srv.handleSettingsSubmit)

	r.Get("/roadmap", srv.handleRoadmapList)
	r.Post("/roadmap/{id}/vote", srv.handleRoadmapVote)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
