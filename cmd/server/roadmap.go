package main

import (
	"fmt"
	"net/http"
	"net/url"
)

type roadmapFeature struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Votes       int
}

type roadmapViewData struct {
	baseViewData
	Features []roadmapFeature
}

func (s *server) handleRoadmapList(w http.ResponseWriter, r *http.Request) {
	features, err := s.listRoadmapFeatures()
	if err != nil {
		http.Error(w, "failed to load roadmap", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "roadmap.html", roadmapViewData{
		baseViewData: baseViewData{
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Features: features,
	})
}

func (s *server) handleRoadmapVote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid feature id", http.StatusBadRequest)
		return
	}

	if err := s.voteRoadmapFeature(id); err != nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/roadmap?success="+url.QueryEscape("Vote counted"), http.StatusSeeOther)
}

func (s *server) listRoadmapFeatures() ([]roadmapFeature, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, status, votes
		FROM roadmap_features
		ORDER BY votes DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query roadmap features: %w", err)
	}
	defer rows.Close()

	features := make([]roadmapFeature, 0)
	for rows.Next() {
		var f roadmapFeature
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Status, &f.Votes); err != nil {
			return nil, fmt.Errorf("scan roadmap feature: %w", err)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roadmap features: %w", err)
	}

	return features, nil
}

func (s *server) voteRoadmapFeature(id int64) error {
	result, err := s.db.Exec(`UPDATE roadmap_features SET votes = votes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("vote roadmap feature: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("vote roadmap feature: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feature not found")
	}
	return nil
}
