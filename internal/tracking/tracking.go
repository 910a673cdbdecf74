package tracking

// TrackingLog is one production milestone on an order's timeline. Logs
// are append-only; the timeline is their creation order.
type TrackingLog struct {
	ID         int    `json:"logId"`
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	Note       string `json:"note"`
	CreatedAt  string `json:"createdAt"`
}
