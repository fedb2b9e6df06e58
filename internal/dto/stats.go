package dto

// StatsPayload represents dashboard statistics for one user
type StatsPayload struct {
	Total        int            `json:"total"`
	ResponseRate float64        `json:"response_rate"`
	ByStatus     map[string]int `json:"by_status"`
}

// StatsResponse wraps the statistics payload
type StatsResponse struct {
	Success bool         `json:"success"`
	Stats   StatsPayload `json:"stats"`
}
