package vehicle

import "time"

// Vehicle is a customer-registered vehicle. Orders that require one (drive-up
// collection) may only reference a vehicle owned by the ordering customer.
type Vehicle struct {
	UID         string    `json:"uid"`
	OwnerUID    string    `json:"owner_uid"`
	PlateNumber string    `json:"plate_number"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (v Vehicle) OwnedBy(userUID string) bool {
	return userUID != "" && v.OwnerUID == userUID
}
