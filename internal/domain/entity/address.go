package entity

// State estado/UF del país.
type State struct {
	ID   string
	Name string
	Code string // sigla, ej: "SP"
}

// City ciudad perteneciente a un estado.
type City struct {
	ID      string
	Name    string
	StateID string
}

// Address dirección física de un cliente o proveedor.
type Address struct {
	ID       string
	Street   string
	Number   string
	District string
	ZipCode  string
	CityID   string
}

// AddressView dirección con ciudad y estado resueltos por JOIN.
type AddressView struct {
	Address
	CityName  string
	StateName string
	StateCode string
}
