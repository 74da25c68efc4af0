package responses

type Message struct {
	Type    string `json:"type"` // "error", etc
	Message string `json:"message"`
	Code    int    `json:"code"` // application-level logic code
}

// Application codes carried in Message.Code
const (
	CodeNone = iota
	CodeBadRequest
	CodeUnauthorized
	CodeThrottled
	CodeRenderFailed
	CodeArchiveUnavailable
	CodeNotFound
)
