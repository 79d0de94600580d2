package models

// Category is one of the fixed activity groupings.
type Category string

const (
	CategoryPhysical Category = "Physical"
	CategoryStudy    Category = "Study"
	CategorySkills   Category = "Skills"
	CategoryHealth   Category = "Health"
	CategoryFun      Category = "Fun"
)

// Activity is a catalog-defined trackable habit. Icon is display-only.
type Activity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
}

// CategoryInfo carries the display label and color for a category.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}
