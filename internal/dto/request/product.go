package request

// ProductRequest holds the text fields of the multipart create form.
type ProductRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Price          *float64 `json:"price" validate:"required,gte=0,lte=9999999999.99"`
	Category       string   `json:"category" validate:"required,max=100"`
	Demographic    string   `json:"demographic" validate:"max=50"`
	Description    string   `json:"description" validate:"max=5000"`
	Sizes          []string `json:"sizes" validate:"max=50,dive,max=50"`
	Colors         []string `json:"colors" validate:"max=50,dive,max=50"`
	Specifications []string `json:"specifications" validate:"max=100,dive,max=500"`
}

// ProductUpdateRequest merges only the fields that are present.
type ProductUpdateRequest struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Price          *float64  `json:"price,omitempty" validate:"omitempty,gte=0,lte=9999999999.99"`
	Category       *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Demographic    *string   `json:"demographic,omitempty" validate:"omitempty,max=50"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Images         *[]string `json:"images,omitempty" validate:"omitempty,min=1,dive,url"`
	Sizes          *[]string `json:"sizes,omitempty" validate:"omitempty,dive,max=50"`
	Colors         *[]string `json:"colors,omitempty" validate:"omitempty,dive,max=50"`
	Specifications *[]string `json:"specifications,omitempty" validate:"omitempty,dive,max=500"`
}

// ProductListRequest carries filters, projection and paging for GET /products.
type ProductListRequest struct {
	ListRequest
	Demographic string
	Category    string
	Search      string
	Fields      []string
}
