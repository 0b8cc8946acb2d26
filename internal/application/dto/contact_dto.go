package dto

// AddressInput dirección para alta de cliente o proveedor. Estado y ciudad se
// resuelven con get-or-create por nombre.
type AddressInput struct {
	Street    string `json:"street"`
	Number    string `json:"number"`
	District  string `json:"district"`
	ZipCode   string `json:"zip_code"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"` // obligatorio solo si el estado no existe
}

// CreateContactRequest alta de cliente o proveedor, con dirección opcional.
type CreateContactRequest struct {
	Name    string        `json:"name"`
	Phone   string        `json:"phone"`
	Email   string        `json:"email"`
	Address *AddressInput `json:"address"`
}

// PatchContactRequest actualización parcial de datos de contacto.
type PatchContactRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// AddressResponse dirección resuelta (ciudad y estado incluidos).
type AddressResponse struct {
	ID        string `json:"id"`
	Street    string `json:"street"`
	Number    string `json:"number"`
	District  string `json:"district"`
	ZipCode   string `json:"zip_code"`
	City      string `json:"city"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

// StateResponse estado para catálogos de formularios.
type StateResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CityResponse ciudad de un estado.
type CityResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StateID string `json:"state_id"`
}

// ContactResponse cliente o proveedor para listados y detalle.
type ContactResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Phone   string           `json:"phone"`
	Email   string           `json:"email"`
	Address *AddressResponse `json:"address,omitempty"`
}
