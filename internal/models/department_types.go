package models

// Department is the model for the 'departments' table.
// A department may only order items whose category is one of its
// accessible categories (flat membership, no subcategory inheritance).
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// CategoryIDs mirrors the 'department_categories' join table.
	CategoryIDs []int64 `json:"categoryIds,omitempty" db:"-"`
}
