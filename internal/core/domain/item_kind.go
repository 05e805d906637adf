package domain

// ItemKind is a kind of purchasable item. Immutable reference data: rows are
// looked up or created by name when a purchase names a new item, never
// updated afterwards.
type ItemKind struct {
	ItemKindID  int64  `json:"itemKindID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
