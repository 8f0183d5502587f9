package main

import "testing"

func TestRoadmapVoteOrdersByVotes(t *testing.T) {
	srv := newTestServer(t)

	for _, title := range []string{"First", "Second"} {
		if _, err := srv.db.Exec(`
			INSERT INTO roadmap_features (title, description) VALUES (?, '')
		`, title); err != nil {
			t.Fatalf("seed roadmap feature: %v", err)
		}
	}

	features, err := srv.listRoadmapFeatures()
	if err != nil {
		t.Fatalf("listRoadmapFeatures returned error: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(features))
	}

	second := features[1]
	for i := 0; i < 3; i++ {
		if err := srv.voteRoadmapFeature(second.ID); err != nil {
			t.Fatalf("voteRoadmapFeature returned error: %v", err)
		}
	}

	features, err = srv.listRoadmapFeatures()
	if err != nil {
		t.Fatalf("listRoadmapFeatures returned error: %v", err)
	}
	if features[0].ID != second.ID || features[0].Votes != 3 {
		t.Fatalf("expected voted feature first with 3 votes, got %+v", features[0])
	}
}

func TestRoadmapVoteUnknownFeature(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.voteRoadmapFeature(42); err == nil {
		t.Fatalf("expected error for unknown feature")
	}
}
