package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse acknowledgement body for commands that return no resource.
type MessageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// FileUpload an uploaded file already read into memory.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AddressDTO postal address of users and suppliers.
type AddressDTO struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}
