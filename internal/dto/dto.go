package dto

// CreatePersonRequest ist der JSON-Body von POST /persons. Die Farbe wird erst beim Abbilden geprüft.
type CreatePersonRequest struct {
	Name     string `json:"name"     validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Zipcode  string `json:"zipcode"  validate:"required,len=5,number"`
	City     string `json:"city"     validate:"required"`
	Color    string `json:"color"`
}

// PersonResponse ist die JSON-Darstellung einer gespeicherten Person.
type PersonResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Zipcode  string `json:"zipcode"`
	City     string `json:"city"`
	Color    string `json:"color"`
}
