package handlers

// LoginResponse confirms a successful admin login
type LoginResponse struct {
	Message string `json:"message"`
}

// CountResponse carries a single count
type CountResponse struct {
	Count int `json:"count"`
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status string `json:"status"`
}
