package schema

// LibraryReadingActivityTable represents the 'library.readingactivity' table
type LibraryReadingActivityTable struct {
	Table        string
	Name         string
	ID           string
	UserID       string
	BookID       string
	ActivityDate string
	MinutesRead  string
	PagesRead    string
	CreatedAt    string
}

// LibraryReadingActivity is the schema definition for library.readingactivity
var LibraryReadingActivity = LibraryReadingActivityTable{
	Table:        "library.readingactivity",
	Name:         "readingactivity",
	ID:           "id",
	UserID:       "userid",
	BookID:       "bookid",
	ActivityDate: "activitydate",
	MinutesRead:  "minutesread",
	PagesRead:    "pagesread",
	CreatedAt:    "createdat",
}

func (t LibraryReadingActivityTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.ActivityDate, t.MinutesRead, t.PagesRead, t.CreatedAt}
}
