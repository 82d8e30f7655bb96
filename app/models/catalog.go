package models

// Category groups products on the ordering screen.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255" json:"name"`
}

// Product is a sellable menu item. Icon is either a placeholder glyph or the
// servable path of an uploaded image.
type Product struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:255" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	CategoryID   *int64  `gorm:"index" json:"category_id"`
	Icon         string  `gorm:"size:512" json:"icon"`
	HasSweetness bool    `gorm:"not null" json:"has_sweetness"`
}

// ProductListing is a product joined with its category name. CategoryName
// is nil when the product has no category or the category no longer exists.
type ProductListing struct {
	Product
	CategoryName *string `json:"category_name"`
}
