package set_slot_active

// SetSlotActiveRequest HTTP request model
type SetSlotActiveRequest struct {
	IsActive bool `json:"isActive"`
}
