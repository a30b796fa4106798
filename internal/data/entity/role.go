package entity

type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RoleCustomer RoleName = "customer"
	RoleManager  RoleName = "manager"
	RoleSeller   RoleName = "seller"
)

type Role struct {
	BaseNoDelete
	Name        RoleName `db:"name"`
	Description string   `db:"description"`
	Active      bool     `db:"active"`
}

func RoleNames(roles []*Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r.Name)
	}
	return names
}
