package types

// City is one directory entry with a handful of curated local insights.
type City struct {
	ID           string   `db:"id"`
	Slug         string   `db:"slug"`
	Name         string   `db:"name"`
	Region       string   `db:"region"`
	Description  string   `db:"description"`
	Insights     []string `db:"insights"` // jsonb array
	DisplayOrder int      `db:"display_order"`
}

// School is one directory entry, attached to a city.
type School struct {
	ID          string   `db:"id"`
	CityID      string   `db:"city_id"`
	Slug        string   `db:"slug"`
	Name        string   `db:"name"`
	Subjects    []string `db:"subjects"` // jsonb array
	Description string   `db:"description"`
	Website     string   `db:"website"`
}
