package schema

// ServiceCategoriesTable represents the 'service_categories' table
type ServiceCategoriesTable struct {
	Table     string
	ID        string
	Slug      string
	Name      string
	SortOrder string
}

// ServiceCategories is the schema definition for service_categories
var ServiceCategories = ServiceCategoriesTable{
	Table:     "service_categories",
	ID:        "id",
	Slug:      "slug",
	Name:      "name",
	SortOrder: "sort_order",
}
