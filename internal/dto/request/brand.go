package request

type BrandRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Active *bool  `json:"active,omitempty"`
}
