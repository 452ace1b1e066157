package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestDatabaseAliasUsesSingleFlag(t *testing.T) {
	var db string
	cmd := &cobra.Command{Use: "example"}
	addStoreFlagAliases(cmd)
	cmd.PersistentFlags().StringVar(&db, "db", "", "Example database path")

	if err := cmd.PersistentFlags().Set("database", "care.db"); err != nil {
		t.Fatalf("set database alias: %v", err)
	}
	if db != "care.db" {
		t.Fatalf("expected db to be set via alias, got %q", db)
	}
	if !cmd.PersistentFlags().Changed("db") {
		t.Fatal("expected db flag to be marked as changed")
	}

	usage := cmd.PersistentFlags().FlagUsages()
	if strings.Contains(usage, "--database ") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
}
