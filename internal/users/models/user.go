package models

// User is the clinic owner's profile. Beyond login identity it carries the
// letterhead data printed on invoices. The password hash never leaves the
// service layer.
type User struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	NIF        string `json:"nif"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
