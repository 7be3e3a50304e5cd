package entity

import "time"

const (
	HeadingID = "main"
	SettingID = "site"
)

// Heading is the storefront banner text. One document, fixed id.
type Heading struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Subtitle  string    `db:"subtitle"`
	UpdatedAt time.Time `db:"updated_at"`
}

type DisplaySettings struct {
	ShowNavbarTitle bool `json:"show_navbar_title"`
	ShowSlider      bool `json:"show_slider"`
	ShowCategories  bool `json:"show_categories"`
	ShowNewArrivals bool `json:"show_new_arrivals"`
}

type ContactSettings struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Setting is the singleton storefront configuration.
type Setting struct {
	ID          string          `db:"id"`
	NavbarTitle string          `db:"navbar_title"`
	Display     DisplaySettings `db:"display"`
	AboutUs     string          `db:"about_us"`
	Terms       string          `db:"terms"`
	Contact     ContactSettings `db:"contact"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// DefaultSetting is what readers see before an admin writes anything.
func DefaultSetting() *Setting {
	return &Setting{
		ID: SettingID,
		Display: DisplaySettings{
			ShowNavbarTitle: true,
			ShowSlider:      true,
			ShowCategories:  true,
			ShowNewArrivals: true,
		},
	}
}
