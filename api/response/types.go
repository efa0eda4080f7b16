/*
Package response writes the JSON envelope every handler answers with.

Success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
Failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }

Status mapping lives here and nowhere else. Internal errors never reach the
client; the real cause and stack are only logged.
*/
package response

import "erp/domain/query"

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// Response is the common envelope
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Field     string `json:"field,omitempty"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// PaginatedResponse is the envelope of a listing
type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
	Code       int        `json:"code"`
	RequestID  string     `json:"request_id,omitempty"`
}

// Pagination describes the window of a listing
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PaginationOf copies the window of a page result
func PaginationOf[T any](page query.PageResult[T]) Pagination {
	return Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages(),
	}
}
