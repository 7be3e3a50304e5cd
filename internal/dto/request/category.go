package request

type CategoryRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Demographic string `json:"demographic" validate:"max=50"`
	Route       string `json:"route" validate:"max=200"`
}

type CategoryUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Demographic *string `json:"demographic,omitempty" validate:"omitempty,max=50"`
	Route       *string `json:"route,omitempty" validate:"omitempty,max=200"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

type SliderRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type SliderUpdateRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}
