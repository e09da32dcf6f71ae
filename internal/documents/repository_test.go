package documents_test

import (
	"context"
	"testing"

	"github.com/JaimeStill/scribe/internal/dbtest"
	"github.com/JaimeStill/scribe/internal/documents"
	"github.com/JaimeStill/scribe/pkg/pagination"
)

func TestRepository_Resolve(t *testing.T) {
	db := dbtest.Open(t)
	sys := documents.New(db, dbtest.Logger(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, documents.Config{MaxSize: "1MB"})
	ctx := context.Background()

	inactive := false
	cmds := []documents.CreateCommand{
		{Owner: "alice", Name: "glossary", Text: "first"},
		{Owner: "bob", Name: "style", Text: "second"},
		{Owner: "alice", Name: "archive", Text: "hidden", Active: &inactive},
		{Owner: "alice", Name: "glossary", Text: "third"},
	}
	for _, cmd := range cmds {
		if _, err := sys.Create(ctx, cmd); err != nil {
			t.Fatalf("Create(%s): %v", cmd.Name, err)
		}
	}

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"empty", nil, ""},
		{"unknown", []string{"missing"}, ""},
		{"inactive", []string{"archive"}, ""},
		{"duplicates collapse", []string{"style", "style"}, "second"},
		{"creation order", []string{"style", "glossary", "archive"}, "first\nsecond\nthird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sys.Resolve(ctx, tt.names)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}
