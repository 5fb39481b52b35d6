package request

// SeatRequest describes one seat of a new game
type SeatRequest struct {
	Name string `json:"name,omitempty"`
	Kind string `json:"kind,omitempty"` // human, random, greedy or deep
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Seats []SeatRequest `json:"seats"`
}

// PlaceRequest is the request body for placing a piece. The player is
// taken from the seat token.
type PlaceRequest struct {
	PieceID  int  `json:"piece_id"`
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Rotation int  `json:"rotation"`
	Flipped  bool `json:"flipped"`
}

// ValidateRequest is the request body for checking a placement without
// committing it
type ValidateRequest struct {
	PlayerID int `json:"player_id"`
	PlaceRequest
}

// AbandonRequest is the optional request body for abandoning a game
type AbandonRequest struct {
	Reason string `json:"reason,omitempty"`
}

// TransformRequest sets the orientation a seat keeps for one of its pieces
type TransformRequest struct {
	Rotation int  `json:"rotation"`
	Flipped  bool `json:"flipped"`
}
