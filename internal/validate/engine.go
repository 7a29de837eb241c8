package validate

import (
	"fmt"

	"github.com/JonBeak/signquote/internal/catalog"
	"github.com/JonBeak/signquote/internal/model"
)

// CellKey addresses one validated cell in the results store.
type CellKey struct {
	RowID string
	Field string
}

// Results is the store the engine writes into. It is fully cleared and
// recomputed on every pass; nothing is patched incrementally, so no
// template ever observes a partially updated pass.
type Results struct {
	Cells      map[CellKey]ValidationResult
	Calculated map[string]model.CalculatedValues
	RowErrors  map[string][]string
	Structural []string
}

func newResults() *Results {
	return &Results{
		Cells:      map[CellKey]ValidationResult{},
		Calculated: map[string]model.CalculatedValues{},
		RowErrors:  map[string][]string{},
	}
}

// Cell returns the validation result for one cell.
func (r *Results) Cell(rowID, field string) (ValidationResult, bool) {
	res, ok := r.Cells[CellKey{RowID: rowID, Field: field}]
	return res, ok
}

// RowHasErrors reports whether any cell or row-level check failed for a row.
func (r *Results) RowHasErrors(rowID string) bool {
	if len(r.RowErrors[rowID]) > 0 {
		return true
	}
	for key, res := range r.Cells {
		if key.RowID == rowID && !res.IsValid {
			return true
		}
	}
	return false
}

// ParsedValues returns the typed values of a row's cells that passed
// validation. Failing cells are absent, so consumers never see a parsed
// value for invalid input.
func (r *Results) ParsedValues(rowID string) map[string]ParsedValue {
	values := map[string]ParsedValue{}
	for key, res := range r.Cells {
		if key.RowID == rowID && res.IsValid && res.Parsed != nil {
			values[key.Field] = *res.Parsed
		}
	}
	return values
}

// CalculatedCellValues returns the derived business quantities of a row's
// passing cells, keyed by field.
func (r *Results) CalculatedCellValues(rowID string) map[string]ParsedValue {
	values := map[string]ParsedValue{}
	for key, res := range r.Cells {
		if key.RowID == rowID && res.IsValid && res.Calculated != nil {
			values[key.Field] = *res.Calculated
		}
	}
	return values
}

// Engine orchestrates full-grid validation passes. It is the only component
// in the pipeline with side effects: it owns and mutates the results store.
type Engine struct {
	registry *Registry
	builder  *ContextBuilder
	results  *Results
}

// NewEngine creates an engine over a template registry, rate catalog, and
// preference store.
func NewEngine(registry *Registry, cat *catalog.Catalog, prefs *catalog.PreferenceStore) *Engine {
	return &Engine{
		registry: registry,
		builder:  NewContextBuilder(cat, prefs),
		results:  newResults(),
	}
}

// Results returns the store written by the last pass.
func (e *Engine) Results() *Results { return e.results }

// ValidateGrid runs one full validation pass: contexts are rebuilt, every
// cell is validated, row completeness is checked, and grid structure is
// verified. The previous results are discarded wholesale first.
func (e *Engine) ValidateGrid(rows []model.Row, customerID string) *Results {
	results := newResults()
	contexts := e.builder.Build(rows, customerID)

	for _, row := range rows {
		ctx := contexts[row.ID]
		results.Calculated[row.ID] = ctx.Calculated

		for _, fs := range SchemaFor(row.ProductTypeID, row.Kind) {
			raw := row.Field(fs.Field)

			if fs.Required && len(raw) == 0 {
				results.RowErrors[row.ID] = append(results.RowErrors[row.ID],
					fmt.Sprintf("%s is required", fs.Label))
			}

			results.Cells[CellKey{RowID: row.ID, Field: fs.Field}] = e.validateCell(raw, fs, ctx)
		}
	}

	results.Structural = validateStructure(rows)

	e.results = results
	return results
}

// validateCell runs one template. A panic inside a template degrades that
// cell to an unvalidated failure instead of aborting the grid pass.
func (e *Engine) validateCell(raw string, fs FieldSchema, ctx *Context) (result ValidationResult) {
	defer func() {
		if recover() != nil {
			result = Invalid(fmt.Sprintf("%s could not be validated", fs.Label), "")
		}
	}()

	tpl, ok := e.registry.Get(fs.Template)
	if !ok {
		return Invalid(fmt.Sprintf("no validator registered for %s", fs.Template), "")
	}
	return tpl.Validate(raw, fs.Params, ctx)
}

// validateStructure checks grid-wide invariants: continuation and sub-item
// rows must reference an existing, earlier, non-marker parent. A panic here
// is swallowed and reported as no structural errors, so a structural bug
// can never abort validation of the rest of the grid.
func validateStructure(rows []model.Row) (errs []string) {
	defer func() {
		if recover() != nil {
			errs = nil
		}
	}()

	seen := map[string]model.Row{}
	for _, row := range rows {
		switch row.Kind {
		case model.RowContinuation, model.RowSubItem:
			if row.ParentID == "" {
				errs = append(errs, fmt.Sprintf("row %s has no parent reference", row.ID))
				break
			}
			parent, ok := seen[row.ParentID]
			if !ok {
				errs = append(errs, fmt.Sprintf("row %s references missing parent %s", row.ID, row.ParentID))
				break
			}
			if parent.Kind.IsMarker() {
				errs = append(errs, fmt.Sprintf("row %s references marker row %s as parent", row.ID, row.ParentID))
			}
		}
		seen[row.ID] = row
	}
	return errs
}
