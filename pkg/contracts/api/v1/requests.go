// Package api contains API contract definitions for the billing service.
// Version v1 represents the current stable API version.
package api

// MetricsRequest carries the query parameters for the billing metrics
// endpoint
type MetricsRequest struct {
	Date      string   `json:"date" query:"date" validate:"required,datetime=2006-01-02"`
	Customers []string `json:"customers,omitempty" query:"customers" validate:"omitempty,dive,min=1"`
}

// StatusRequest carries the query parameters for the customer status
// endpoint
type StatusRequest struct {
	Date string `json:"date" query:"date" validate:"required,datetime=2006-01-02"`
}

// SuccessResponse is the envelope for successful data responses
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Count  *int        `json:"count,omitempty"`
}

// EmptyResponse signals that no billing data is loaded. Clients render
// their idle state on it; it is not an error.
type EmptyResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// NewSuccessResponse builds a success envelope without a count
func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{Status: "success", Data: data}
}

// NewListResponse builds a success envelope with a count
func NewListResponse(data interface{}, count int) SuccessResponse {
	return SuccessResponse{Status: "success", Data: data, Count: &count}
}

// NewEmptyResponse builds an idle-state envelope
func NewEmptyResponse(detail string) EmptyResponse {
	return EmptyResponse{Status: "empty", Detail: detail}
}
