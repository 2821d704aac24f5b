package model

type LengthsRequestBody struct {
	Rhythms []string `json:"rhythms"`
	Strict  bool     `json:"strict"`
}

type Span struct {
	Offset   string `json:"offset"`
	Duration string `json:"duration"`
	Pitch    string `json:"pitch,omitempty"`
}

type LengthsResponse struct {
	Lengths []string `json:"lengths"`
	Spans   []Span   `json:"spans"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
