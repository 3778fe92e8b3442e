package model

// Category labels produced by the keyword classifier.
const (
	CategoryFood          = "餐饮"
	CategoryShopping      = "购物"
	CategoryTransport     = "交通"
	CategoryEntertainment = "娱乐"
	CategoryMedical       = "医疗"
	CategoryHousing       = "住房"
	CategoryOther         = "其他"
)

// CategorySummary contains aggregated ledger totals for a category.
type CategorySummary struct {
	Category string
	Count    int
	Total    float64
}
