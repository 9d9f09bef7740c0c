package docstore_test

import (
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/p-n-ai/taleem/internal/docstore"
	"github.com/p-n-ai/taleem/internal/platform/config"
	"github.com/p-n-ai/taleem/internal/platform/database"
)

func TestPostgresStore_NilPool(t *testing.T) {
	if _, err := docstore.NewPostgresStore(nil); err == nil {
		t.Error("NewPostgresStore(nil) should fail")
	}
}

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := t.Context()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("taleem"),
		postgres.WithUsername("taleem"),
		postgres.WithPassword("taleem"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("starting postgres: %v", err)
	}

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}

	db, err := database.Open(ctx, config.DatabaseConfig{URL: url, MaxConns: 4})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx, docstore.Schema); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}

	store, err := docstore.NewPostgresStore(db.Pool)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}

	docs := []docstore.Document{
		{ID: "sets-ops", Fields: map[string]any{"gradeLevel": 8, "topic": "Sets"}},
		{ID: "sets-intro", Fields: map[string]any{"gradeLevel": 7, "topic": "Sets"}},
	}
	for _, d := range docs {
		if err := store.Upsert(ctx, "concepts", d); err != nil {
			t.Fatalf("Upsert(%s) error = %v", d.ID, err)
		}
	}
	// Updating keeps the first-insert position.
	if err := store.Upsert(ctx, "concepts", docstore.Document{
		ID:     "sets-ops",
		Fields: map[string]any{"gradeLevel": 8, "topic": "Set Operations"},
	}); err != nil {
		t.Fatalf("Upsert(update) error = %v", err)
	}

	all, err := store.FetchAll(ctx, "concepts")
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("FetchAll() returned %d docs, want 2", len(all))
	}
	if all[0].ID != "sets-ops" || all[1].ID != "sets-intro" {
		t.Errorf("order = [%s %s], want [sets-ops sets-intro]", all[0].ID, all[1].ID)
	}
	if all[0].Fields["topic"] != "Set Operations" {
		t.Errorf("topic = %v, want Set Operations", all[0].Fields["topic"])
	}
	// JSONB numbers come back as float64.
	if all[1].Fields["gradeLevel"] != float64(7) {
		t.Errorf("gradeLevel = %#v, want 7", all[1].Fields["gradeLevel"])
	}

	_, found, err := store.Fetch(ctx, "concepts", "missing-id")
	if err != nil {
		t.Fatalf("Fetch(missing) error = %v", err)
	}
	if found {
		t.Error("Fetch(missing) should not be found")
	}

	if err := store.Delete(ctx, "concepts", "sets-ops"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := store.Fetch(ctx, "concepts", "sets-ops"); found {
		t.Error("sets-ops should be gone after Delete")
	}
}
