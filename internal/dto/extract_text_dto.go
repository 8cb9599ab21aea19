package dto

type ExtractTextRequest struct {
	ImageUrl string `json:"imageUrl"`
}

type ExtractTextResponse struct {
	Text string `json:"text"`
}

// ExtractTextError is the body of every failed extract-text call.
type ExtractTextError struct {
	Error string `json:"error"`
	Text  string `json:"text"`
}
