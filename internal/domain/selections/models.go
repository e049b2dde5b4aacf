package selections

import "time"

type Session string

const (
	SessionMorning Session = "morning"
	SessionEvening Session = "evening"
)

// Selection is one user's picks for one date. One row per (user, date key);
// history is permanent, rows are only ever upserted.
type Selection struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	DateKey            string    `json:"dateKey"`
	MorningDrinkItemID *string   `json:"morningDrinkItemId"`
	EveningDrinkItemID *string   `json:"eveningDrinkItemId"`
	EveningSnackItemID *string   `json:"eveningSnackItemId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type SelectionInput struct {
	MorningDrinkItemID *string `json:"morningDrinkItemId"`
	EveningDrinkItemID *string `json:"eveningDrinkItemId"`
	EveningSnackItemID *string `json:"eveningSnackItemId"`
}

// DayView is the eligibility snapshot plus the stored selection for one date.
type DayView struct {
	DateKey         string     `json:"dateKey"`
	SnacksAvailable bool       `json:"snacksAvailable"`
	IsWfh           bool       `json:"isWfh"`
	MorningAllowed  bool       `json:"morningAllowed"`
	EveningAllowed  bool       `json:"eveningAllowed"`
	Selection       *Selection `json:"selection"`
}

type WeekDay struct {
	DateKey         string `json:"dateKey"`
	SnacksAvailable bool   `json:"snacksAvailable"`
	IsWfh           bool   `json:"isWfh"`
	HasSelection    bool   `json:"hasSelection"`
}

type WeekView struct {
	WeekOf string    `json:"weekOf"`
	Days   []WeekDay `json:"days"`
}

// ItemRef is a resolved catalog reference in history views. Deleted items
// leave a nil reference.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type HistoryEntry struct {
	ID           string    `json:"id"`
	DateKey      string    `json:"dateKey"`
	MorningDrink *ItemRef  `json:"morningDrink"`
	EveningDrink *ItemRef  `json:"eveningDrink"`
	EveningSnack *ItemRef  `json:"eveningSnack"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type WeekApplyResult struct {
	AppliedDates []string `json:"appliedDates"`
}

// Restrictions is the client-facing edit-window snapshot.
type Restrictions struct {
	MorningAllowed bool   `json:"morningAllowed"`
	EveningAllowed bool   `json:"eveningAllowed"`
	MorningCutoff  string `json:"morningCutoff"`
	EveningCutoff  string `json:"eveningCutoff"`
}
