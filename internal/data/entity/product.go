package entity

type Product struct {
	Base
	Title          string   `db:"title"`
	Price          float64  `db:"price"`
	Images         []string `db:"images"`
	Category       string   `db:"category"`
	Demographic    string   `db:"demographic"`
	Description    string   `db:"description"`
	Sizes          []string `db:"sizes"`
	Colors         []string `db:"colors"`
	Specifications []string `db:"specifications"`
}

// ProductFilter narrows product listings. Empty fields are ignored.
// Search is a case-insensitive substring match over title, description, category and demographic.
type ProductFilter struct {
	Demographic string
	Category    string
	Search      string
}
