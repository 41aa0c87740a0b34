package response

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the envelope every JSON endpoint answers with. List payloads,
// single entities and plain acknowledgement strings all ride in Data.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps a payload in the success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     statusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

// Ack is Success for endpoints whose only payload is a confirmation phrase
// (approve, disapprove, batch delete).
func Ack(statusCode int, msg string) Response {
	return Success(statusCode, msg)
}

// Error wraps a failure message in the error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     statusError,
		StatusCode: statusCode,
		Error:      err,
	}
}
