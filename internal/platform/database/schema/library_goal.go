package schema

// LibraryGoalTable represents the 'library.goal' table
type LibraryGoalTable struct {
	Table        string
	Name         string
	ID           string
	UserID       string
	Title        string
	Description  string
	TargetBooks  string
	CurrentBooks string
	StartDate    string
	EndDate      string
	Completed    string
	CreatedAt    string
	UpdatedAt    string
}

// LibraryGoal is the schema definition for library.goal
var LibraryGoal = LibraryGoalTable{
	Table:        "library.goal",
	Name:         "goal",
	ID:           "id",
	UserID:       "userid",
	Title:        "title",
	Description:  "description",
	TargetBooks:  "targetbooks",
	CurrentBooks: "currentbooks",
	StartDate:    "startdate",
	EndDate:      "enddate",
	Completed:    "completed",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t LibraryGoalTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Description, t.TargetBooks, t.CurrentBooks,
		t.StartDate, t.EndDate, t.Completed, t.CreatedAt, t.UpdatedAt,
	}
}
