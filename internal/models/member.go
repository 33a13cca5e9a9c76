package models

// Member represents one row of the club roster. The roster is owned by the
// spreadsheet; a Member value is an immutable snapshot of one fetch and the
// raffle logic only ever reads it.
type Member struct {
	ID       string   `bson:"id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Phone    string   `bson:"phone" json:"phone"`
	Paid     bool     `bson:"paid" json:"paid"`
	ImageURL string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	History  []string `bson:"history,omitempty" json:"history,omitempty"` // prior recorded wins, also from outside the app
}

// HasPriorWins reports whether the spreadsheet records any win for the member.
// Anyone with a recorded win is excluded from primary draws until a cycle
// reset wipes the slate.
func (m Member) HasPriorWins() bool {
	return len(m.History) > 0
}
