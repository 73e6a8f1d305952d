package model

type SessionCreated struct {
	Id string `json:"id"`
}

type SessionStatus struct {
	Id        string  `json:"id"`
	Progress  float64 `json:"progress"`
	Ready     bool    `json:"ready"`
	NoteCount uint64  `json:"note_count"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Error     string  `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
