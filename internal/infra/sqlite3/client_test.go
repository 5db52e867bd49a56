package sqlite3

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "memory", path: ":memory:"},
		{name: "file in missing directory", path: filepath.Join(t.TempDir(), "nested", "numbers.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(context.Background(), WithPath(tt.path))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer db.Close()

			if err := db.Ready(context.Background()); err != nil {
				t.Errorf("Ready() error = %v", err)
			}
		})
	}
}
