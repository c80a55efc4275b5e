package address

import "time"

// Address is a plain structured postal address. It is a value: assigning it
// copies it, which is what gives order address snapshots their isolation from
// later edits to a user's saved address.
type Address struct {
	Title       string `json:"title,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	Line3       string `json:"line3,omitempty"`
	Line4       string `json:"line4,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UserAddress is an entry in a user's address book.
type UserAddress struct {
	UID       string    `json:"uid"`
	UserUID   string    `json:"user_uid"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
