package dto

// DeleteRequest carries the confirmation flag for deletes that cascade.
type DeleteRequest struct {
	Confirm bool `json:"confirm"`
}
