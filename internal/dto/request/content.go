package request

type HeadingRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Subtitle *string `json:"subtitle,omitempty" validate:"omitempty,max=500"`
}

type NavbarSettingsRequest struct {
	NavbarTitle *string `json:"navbar_title" validate:"required,max=100"`
}

type DisplaySettingsRequest struct {
	ShowNavbarTitle *bool `json:"show_navbar_title,omitempty"`
	ShowSlider      *bool `json:"show_slider,omitempty"`
	ShowCategories  *bool `json:"show_categories,omitempty"`
	ShowNewArrivals *bool `json:"show_new_arrivals,omitempty"`
}

type AboutSettingsRequest struct {
	AboutUs *string `json:"about_us" validate:"required,max=20000"`
}

type TermsSettingsRequest struct {
	Terms *string `json:"terms" validate:"required,max=50000"`
}

type ContactSettingsRequest struct {
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
}
