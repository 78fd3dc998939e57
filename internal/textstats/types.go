package textstats

// UploadResult holds the statistics computed for one uploaded file
type UploadResult struct {
	Filename       string  `json:"filename"`
	Encoding       string  `json:"encoding"`
	NumWords       int     `json:"num_words"`
	NumUniqueWords int     `json:"num_unique_words"`
	NumCharacters  int     `json:"num_characters"`
	ExecutionTime  float64 `json:"execution_time"` // seconds
}

// ErrorResult is the body returned instead of an UploadResult when no decoder
// in the chain accepts the upload.
type ErrorResult struct {
	Error string `json:"error"`
}

// InfoResult is the body returned for informational endpoints
type InfoResult struct {
	Info string `json:"info"`
}
