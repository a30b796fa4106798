package request

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin customer manager seller"`
}
