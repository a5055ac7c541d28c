package schema

// LibraryBookTable represents the 'library.book' table
type LibraryBookTable struct {
	Table       string
	Name        string
	ID          string
	UserID      string
	ExternalID  string
	Title       string
	Authors     string
	Status      string
	CurrentPage string
	PageCount   string
	Rating      string
	Genres      string
	AddedAt     string
	FinishedAt  string
	UpdatedAt   string
}

// LibraryBook is the schema definition for library.book
var LibraryBook = LibraryBookTable{
	Table:       "library.book",
	Name:        "book",
	ID:          "id",
	UserID:      "userid",
	ExternalID:  "externalid",
	Title:       "title",
	Authors:     "authors",
	Status:      "status",
	CurrentPage: "currentpage",
	PageCount:   "pagecount",
	Rating:      "rating",
	Genres:      "genres",
	AddedAt:     "addedat",
	FinishedAt:  "finishedat",
	UpdatedAt:   "updatedat",
}

func (t LibraryBookTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ExternalID, t.Title, t.Authors, t.Status, t.CurrentPage,
		t.PageCount, t.Rating, t.Genres, t.AddedAt, t.FinishedAt,
	}
}
