package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JonBeak/signquote/internal/model"
)

func sampleQuote(name string) model.Quote {
	quote := model.NewQuote(name, "acme")
	row := model.NewRow(model.ProductChannelLetters)
	row.SetField(model.FieldQuantity, "1")
	row.SetField("field1", "front lit")
	row.SetField("field2", "12x9")
	quote.AddRow(row)
	return quote
}

func TestSaveAndLoadQuote(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quote.json")

	quote := sampleQuote("Storefront Sign")
	if err := SaveQuote(path, quote); err != nil {
		t.Fatalf("SaveQuote failed: %v", err)
	}

	loaded, err := LoadQuote(path)
	if err != nil {
		t.Fatalf("LoadQuote failed: %v", err)
	}

	if loaded.ID != quote.ID {
		t.Errorf("expected ID %s, got %s", quote.ID, loaded.ID)
	}
	if loaded.Name != "Storefront Sign" {
		t.Errorf("expected name preserved, got %s", loaded.Name)
	}
	if loaded.CustomerID != "acme" {
		t.Errorf("expected customer acme, got %s", loaded.CustomerID)
	}
	if len(loaded.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(loaded.Rows))
	}
	if got := loaded.Rows[0].Field("field2"); got != "12x9" {
		t.Errorf("expected letter data carried through save/load, got %q", got)
	}
}

func TestLoadQuoteMissingFile(t *testing.T) {
	_, err := LoadQuote(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing quote file")
	}
}

func TestLoadQuoteInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadQuote(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadQuoteWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	if err := os.WriteFile(path, []byte(`{"name":"no id"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadQuote(path); err == nil {
		t.Fatal("expected error for quote file without an id")
	}
}

func TestLoadQuoteNilRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	if err := os.WriteFile(path, []byte(`{"id":"abc123","name":"empty","rows":null}`), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadQuote(path)
	if err != nil {
		t.Fatalf("LoadQuote failed: %v", err)
	}
	if loaded.Rows == nil {
		t.Error("Rows should not be nil after loading")
	}
}

func TestListQuotes(t *testing.T) {
	dir := t.TempDir()

	first := sampleQuote("First")
	first.UpdatedAt = "2026-01-01T00:00:00Z"
	second := sampleQuote("Second")
	second.UpdatedAt = "2026-02-01T00:00:00Z"

	if err := SaveQuote(filepath.Join(dir, first.ID+".json"), first); err != nil {
		t.Fatal(err)
	}
	if err := SaveQuote(filepath.Join(dir, second.ID+".json"), second); err != nil {
		t.Fatal(err)
	}
	// Garbage files are skipped, not fatal
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a quote"), 0644); err != nil {
		t.Fatal(err)
	}

	summaries, err := ListQuotes(dir)
	if err != nil {
		t.Fatalf("ListQuotes failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Name != "Second" {
		t.Errorf("expected most recently updated quote first, got %s", summaries[0].Name)
	}
	if summaries[1].CustomerID != "acme" {
		t.Errorf("expected customer id on summary, got %s", summaries[1].CustomerID)
	}
}

func TestListQuotesMissingDir(t *testing.T) {
	summaries, err := ListQuotes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("expected no error for missing directory, got: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty list, got %d entries", len(summaries))
	}
}
