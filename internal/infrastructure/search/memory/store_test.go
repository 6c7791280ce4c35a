package memory

import (
	"context"
	"testing"

	"github.com/scorepipe/scorepipe/internal/domain/clubindex"
)

func seedStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()
	clubs := []clubindex.ClubAggregate{
		{Key: "arsenal", Name: "Arsenal", Country: "England", Leagues: []string{"premier league"}},
		{Key: "aston villa", Name: "Aston Villa", Country: "England", Leagues: []string{"premier league"}},
		{Key: "barcelona", Name: "Barcelona", Country: "Spain", Leagues: []string{"laliga"}},
		{Key: "real madrid", Name: "Real Madrid", Country: "Spain", Leagues: []string{"laliga", "champions league"}},
	}
	for _, club := range clubs {
		if err := store.Replace(context.Background(), club); err != nil {
			t.Fatalf("Replace(%s): %v", club.Key, err)
		}
	}
	return store
}

func TestSearchFuzzyName(t *testing.T) {
	store := seedStore(t)

	got, err := store.Search(context.Background(), clubindex.Query{Name: "Arsnal"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Key != "arsenal" {
		t.Fatalf("Search(Arsnal) = %v", got)
	}
}

func TestSearchShortQueriesAreExact(t *testing.T) {
	store := seedStore(t)

	got, err := store.Search(context.Background(), clubindex.Query{Name: "ar"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Distance budget is zero for two runes; only substring hits remain.
	for _, club := range got {
		if club.Key != "arsenal" && club.Key != "barcelona" {
			t.Errorf("unexpected hit %q", club.Key)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	store := seedStore(t)

	got, err := store.Search(context.Background(), clubindex.Query{Name: "real madrid", Country: "England"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("country filter leaked: %v", got)
	}

	got, err = store.Search(context.Background(), clubindex.Query{Name: "real madrid", League: "Champions League"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Key != "real madrid" {
		t.Fatalf("league filter: %v", got)
	}
}

func TestSearchLimit(t *testing.T) {
	store := seedStore(t)

	got, err := store.Search(context.Background(), clubindex.Query{Name: "aston villa", Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("limit ignored: %v", got)
	}
}

func TestReplaceOverwrites(t *testing.T) {
	store := seedStore(t)

	if err := store.Replace(context.Background(), clubindex.ClubAggregate{Key: "arsenal", Name: "Arsenal", Wins: 9}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 4 {
		t.Fatalf("Count = %d, want 4", count)
	}

	got, err := store.Search(context.Background(), clubindex.Query{Name: "Arsenal"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Wins != 9 {
		t.Fatalf("replace did not overwrite: %v", got)
	}
}
