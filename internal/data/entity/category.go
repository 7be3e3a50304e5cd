package entity

type Category struct {
	Base
	Title       string `db:"title"`
	Demographic string `db:"demographic"`
	Route       string `db:"route"`
	Image       string `db:"image"`
}

type CategoryFilter struct {
	Demographic string
}
