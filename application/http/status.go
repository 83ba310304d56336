package http

// The status codes this server actually emits.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusUnprocessableEntity = 422
	StatusInternalServerError = 500
)

var reasonPhrases = map[int]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusNoContent:           "No Content",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusUnprocessableEntity: "Unprocessable Entity",
	StatusInternalServerError: "Internal Server Error",
}

// ReasonPhrase returns the reason phrase for code. Codes outside the table
// fall back to "OK"; callers are expected to stick to the constants above.
func ReasonPhrase(code int) string {
	if reason, ok := reasonPhrases[code]; ok {
		return reason
	}
	return "OK"
}
