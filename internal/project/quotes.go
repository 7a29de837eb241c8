package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JonBeak/signquote/internal/model"
)

// DefaultQuotesDir returns the default directory for saved quotes.
func DefaultQuotesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "signquote", "quotes"), nil
}

// SaveQuote writes a quote to a JSON file, creating parent directories
// as needed.
func SaveQuote(path string, quote model.Quote) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadQuote reads a quote from a JSON file.
func LoadQuote(path string) (model.Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Quote{}, err
	}
	var quote model.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return model.Quote{}, err
	}
	if quote.ID == "" {
		return model.Quote{}, errors.New("quote file has no id")
	}
	if quote.Rows == nil {
		quote.Rows = []model.Row{}
	}
	return quote, nil
}

// SaveQuoteToDefault saves a quote into the default quotes directory,
// named after its id, and returns the path written.
func SaveQuoteToDefault(quote model.Quote) (string, error) {
	dir, err := DefaultQuotesDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, quote.ID+".json")
	return path, SaveQuote(path, quote)
}

// QuoteSummary describes a saved quote without its row data.
type QuoteSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CustomerID string `json:"customer_id"`
	UpdatedAt  string `json:"updated_at"`
	Path       string `json:"path"`
}

// ListQuotes scans a directory for saved quotes and returns their
// summaries, most recently updated first. Files that do not parse as
// quotes are skipped. A missing directory yields an empty list.
func ListQuotes(dir string) ([]QuoteSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []QuoteSummary{}, nil
		}
		return nil, err
	}

	summaries := []QuoteSummary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		quote, err := LoadQuote(path)
		if err != nil {
			continue
		}
		summaries = append(summaries, QuoteSummary{
			ID:         quote.ID,
			Name:       quote.Name,
			CustomerID: quote.CustomerID,
			UpdatedAt:  quote.UpdatedAt,
			Path:       path,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}
