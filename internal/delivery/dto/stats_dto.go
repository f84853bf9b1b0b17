package dto

// DashboardStatsResponse is the admin landing-page summary.
type DashboardStatsResponse struct {
	UserCount      int64 `json:"user_count"`
	DoctorCount    int64 `json:"doctor_count"`
	TicketCount    int64 `json:"ticket_count"`
	PendingTickets int64 `json:"pending_tickets"`
}
