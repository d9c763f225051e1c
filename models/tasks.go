package models

// BidExpiryPayload is the task payload for deferred bid expiry.
type BidExpiryPayload struct {
	BidID string `json:"bidId"`
}
