package model

// Move identifies where a token landed
type Move struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Player Cell `json:"player"`
}
