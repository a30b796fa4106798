package entity

type Brand struct {
	BaseNoDelete
	Name   string `db:"name"`
	Active bool   `db:"active"`
}
