package entity

type Slider struct {
	Base
	Title string `db:"title"`
	Image string `db:"image"`
}
