package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewStore(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ada", "Ada@Example.COM", "hash")
	if err != nil {
		t.Fatal(err)
	}

	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if u == nil {
		t.Fatal("user not found by id")
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != "user" {
		t.Fatalf("default role = %q", u.Role)
	}
	if len(u.Preferences) != 0 {
		t.Fatalf("new user preferences = %v", u.Preferences)
	}

	// Lookup is case-insensitive on the caller's side too.
	byEmail, err := s.GetUserByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("lookup by email: %+v", byEmail)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateUser(ctx, "Imposter", "ADA@example.com", "hash2"); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestGetUser_Missing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil || u != nil {
		t.Fatalf("missing email: user=%v err=%v", u, err)
	}
	u, err = s.GetUserByID(ctx, 9999)
	if err != nil || u != nil {
		t.Fatalf("missing id: user=%v err=%v", u, err)
	}
}

func TestUpdatePreferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.UpdatePreferences(ctx, id, []string{"technology", "science"})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(u.Preferences) != 2 || u.Preferences[0] != "technology" || u.Preferences[1] != "science" {
		t.Fatalf("preferences = %v", u.Preferences)
	}

	// nil clears instead of erroring.
	if ok, err := s.UpdatePreferences(ctx, id, nil); err != nil || !ok {
		t.Fatalf("clear: ok=%v err=%v", ok, err)
	}
	u, _ = s.GetUserByID(ctx, id)
	if len(u.Preferences) != 0 {
		t.Fatalf("cleared preferences = %v", u.Preferences)
	}

	if ok, err := s.UpdatePreferences(ctx, 9999, []string{"x"}); err != nil || ok {
		t.Fatalf("missing user: ok=%v err=%v", ok, err)
	}
}

func TestReadMarks_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := s.MarkRead(ctx, id, "https://example.com/a"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.MarkRead(ctx, id, "https://example.com/b"); err != nil {
		t.Fatal(err)
	}

	urls, err := s.ReadArticles(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 {
		t.Fatalf("read list = %v", urls)
	}
}

func TestFavorites_MarkAndUnmark(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.MarkFavorite(ctx, id, "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkFavorite(ctx, id, "https://example.com/b"); err != nil {
		t.Fatal(err)
	}
	if err := s.UnmarkFavorite(ctx, id, "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	// Removing something never favorited is fine.
	if err := s.UnmarkFavorite(ctx, id, "https://example.com/never"); err != nil {
		t.Fatal(err)
	}

	urls, err := s.FavoriteArticles(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 1 || urls[0] != "https://example.com/b" {
		t.Fatalf("favorites = %v", urls)
	}
}

func TestDeleteUser_CascadesMarks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.MarkRead(ctx, id, "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkFavorite(ctx, id, "https://example.com/a"); err != nil {
		t.Fatal(err)
	}

	ok, err := s.DeleteUser(ctx, id)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	var count int
	row := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM read_articles) + (SELECT COUNT(*) FROM favorite_articles)`)
	if err := row.Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("marks survived user deletion: %d", count)
	}

	if ok, err := s.DeleteUser(ctx, id); err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
}
