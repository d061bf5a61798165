package models

// Category defines the struct for the 'categories' table.
// Categories form a tree via ParentID; the parent chain is kept acyclic
// by the category service.
type Category struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Slug     string `json:"slug" db:"slug"`
	ParentID *int64 `json:"parentId,omitempty" db:"parent_id"` // Use pointer for NULL

	// Children is populated only when the tree is assembled for a response.
	Children []Category `json:"children,omitempty" db:"-"`
}

// CategoryCount is one row of the per-category item count report
type CategoryCount struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	ItemCount  int    `json:"itemCount"`
}
