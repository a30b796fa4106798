package entity

type Category struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Active      bool    `db:"active"`
}
