package entity

// Dataset is the in-memory aggregate for one session: everything the costing
// core reads or mutates lives here. It is replaced wholesale on sign-out
// (cleared) and on a successful remote refresh (overwritten, never merged).
type Dataset struct {
	Ingredients []Ingredient    `json:"ingredients"`
	Recipes     []Recipe        `json:"recipes"`
	Settings    Settings        `json:"settings"`
	Expenses    []Expense       `json:"expenses"`
	Snapshots   []DailySnapshot `json:"snapshots"`
	LastSync    int64           `json:"last_sync_epoch_millis"`
}

// NewDataset returns an empty dataset with defaults applied.
func NewDataset() Dataset {
	ds := Dataset{}
	ds.Normalize()
	return ds
}

// Normalize applies defensive defaults so partially populated data (an old or
// truncated cache payload, a sparse remote row) never breaks a derivation:
// nil collections become empty, batch sizes stay at least one serving and the
// discount rate stays inside its range.
func (d *Dataset) Normalize() {
	if d.Ingredients == nil {
		d.Ingredients = []Ingredient{}
	}
	if d.Recipes == nil {
		d.Recipes = []Recipe{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Snapshots == nil {
		d.Snapshots = []DailySnapshot{}
	}
	for i := range d.Recipes {
		if d.Recipes[i].BatchSize < 1 {
			d.Recipes[i].BatchSize = 1
		}
		if d.Recipes[i].DailyVolume < 0 {
			d.Recipes[i].DailyVolume = 0
		}
		if d.Recipes[i].Ingredients == nil {
			d.Recipes[i].Ingredients = []RecipeIngredient{}
		}
	}
	for i := range d.Ingredients {
		if d.Ingredients[i].StockQty < 0 {
			d.Ingredients[i].StockQty = 0
		}
	}
	d.Settings.ClampDiscountRate()
}

// Clone returns a deep copy so derivations can work on a stable view while
// the live dataset keeps mutating.
func (d *Dataset) Clone() Dataset {
	out := Dataset{
		Ingredients: make([]Ingredient, len(d.Ingredients)),
		Recipes:     make([]Recipe, len(d.Recipes)),
		Settings:    d.Settings,
		Expenses:    make([]Expense, len(d.Expenses)),
		Snapshots:   make([]DailySnapshot, len(d.Snapshots)),
		LastSync:    d.LastSync,
	}
	copy(out.Ingredients, d.Ingredients)
	copy(out.Expenses, d.Expenses)
	copy(out.Snapshots, d.Snapshots)
	for i, r := range d.Recipes {
		refs := make([]RecipeIngredient, len(r.Ingredients))
		copy(refs, r.Ingredients)
		r.Ingredients = refs
		out.Recipes[i] = r
	}
	return out
}

// IngredientByID looks up an ingredient reference target.
func (d *Dataset) IngredientByID(id EntityID) (*Ingredient, bool) {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID.Equal(id) {
			return &d.Ingredients[i], true
		}
	}
	return nil, false
}

// RecipeByID looks up a recipe.
func (d *Dataset) RecipeByID(id EntityID) (*Recipe, bool) {
	for i := range d.Recipes {
		if d.Recipes[i].ID.Equal(id) {
			return &d.Recipes[i], true
		}
	}
	return nil, false
}
