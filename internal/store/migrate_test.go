package store

import "testing"

func TestLoadMigrationsOrderedBySemver(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].version >= migrations[i].version {
			t.Fatalf("migrations not strictly increasing: %s then %s", migrations[i-1].version, migrations[i].version)
		}
	}
	if migrations[0].version != "v0.1.0" {
		t.Fatalf("first migration version = %s, want v0.1.0", migrations[0].version)
	}
}
