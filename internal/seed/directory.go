package seed

import (
	"bienvenue/internal/store"
	"bienvenue/pkg/types"
	"context"
	"fmt"
)

// SeedDirectory syncs the database with the city/school definitions below.
// This file is the source of truth for the directory:
// - Inserts new rows that don't exist
// - Updates existing rows that have changed
//
// To generate new IDs: `go run ./cmd/bienvenue nanoid`
func SeedDirectory(ctx context.Context, repo *store.DirectoryRepository) error {
	cities := []types.City{
		{
			ID:          "Vg2qLxkM3pWbTzR4yNfJh",
			Slug:        "paris",
			Name:        "Paris",
			Region:      "Île-de-France",
			Description: "The capital city with prestigious business schools and universities",
			Insights: []string{
				"Navigo subscription covers metro, RER, buses and trams",
				"CROUS housing is scarce, apply the day applications open",
				"Most museums are free for EU students under 26",
			},
			DisplayOrder: 1,
		},
		{
			ID:          "b8KdQw5sYmXnC1JvHtPeZ",
			Slug:        "lyon",
			Name:        "Lyon",
			Region:      "Auvergne-Rhône-Alpes",
			Description: "Major business hub with excellent educational institutions",
			Insights: []string{
				"TCL student pass gives unlimited metro and tram rides",
				"The Part-Dieu district hosts most student job fairs",
			},
			DisplayOrder: 2,
		},
		{
			ID:          "rT7mNc2fAqLsKu9XgWyDB",
			Slug:        "reims",
			Name:        "Reims",
			Region:      "Grand Est",
			Description: "Historic city home to renowned business schools",
			Insights: []string{
				"45 minutes from Paris by TGV, handy for internships",
				"Student housing is distinctly cheaper than Île-de-France",
			},
			DisplayOrder: 3,
		},
		{
			ID:          "Jc4yPv8hZrEwQn6MtBsGk",
			Slug:        "rouen",
			Name:        "Rouen",
			Region:      "Normandy",
			Description: "Cultural center with quality higher education",
			Insights: []string{
				"Compact center, most students get around by bike",
			},
			DisplayOrder: 4,
		},
		{
			ID:          "x1FgRj9dSnVkLw3CqYmTe",
			Slug:        "cergy",
			Name:        "Cergy-Pontoise",
			Region:      "Île-de-France",
			Description: "Modern business district near Paris",
			Insights: []string{
				"RER A reaches central Paris in about 35 minutes",
			},
			DisplayOrder: 5,
		},
		{
			ID:          "u5HtWz6bXpMcNq2KvJdEy",
			Slug:        "fontainebleau",
			Name:        "Fontainebleau",
			Region:      "Île-de-France",
			Description: "Historic town with world-class business education",
			Insights: []string{
				"The forest is a weekend climbing and hiking hub",
			},
			DisplayOrder: 6,
		},
	}

	for i := range cities {
		if err := repo.UpsertCity(ctx, &cities[i]); err != nil {
			return fmt.Errorf("seed city %s: %w", cities[i].Slug, err)
		}
	}

	schools := []types.School{
		{
			ID:          "Dk3wYx7rQnLtBv9QsMfHc",
			CityID:      "rT7mNc2fAqLsKu9XgWyDB",
			Slug:        "neoma",
			Name:        "NEOMA Business School",
			Subjects:    []string{"Business", "Management", "Finance"},
			Description: "Top 10 business school in France with campuses in Reims and Rouen",
			Website:     "https://neoma-bs.com",
		},
		{
			ID:          "m9PzTs4gKvWqXe2RyNcJb",
			CityID:      "b8KdQw5sYmXnC1JvHtPeZ",
			Slug:        "emlyon",
			Name:        "emlyon business school",
			Subjects:    []string{"Business", "Entrepreneurship"},
			Description: "Top 5 business school in France, campuses in Lyon and Paris",
			Website:     "https://em-lyon.com",
		},
		{
			ID:          "W6cVb1nJrMtPz8KxQdFgs",
			CityID:      "x1FgRj9dSnVkLw3CqYmTe",
			Slug:        "essec",
			Name:        "ESSEC Business School",
			Subjects:    []string{"Business", "Economics"},
			Description: "Top 3 business school in France, based in Cergy-Pontoise",
			Website:     "https://essec.edu",
		},
		{
			ID:          "q2RfXw9kNpYvTc5JzHsLm",
			CityID:      "Vg2qLxkM3pWbTzR4yNfJh",
			Slug:        "hec",
			Name:        "HEC Paris",
			Subjects:    []string{"Business", "Finance", "Strategy"},
			Description: "The number one ranked business school in France",
			Website:     "https://hec.edu",
		},
		{
			ID:          "e7JtMd3sVzQwGy4XnKcPb",
			CityID:      "u5HtWz6bXpMcNq2KvJdEy",
			Slug:        "insead",
			Name:        "INSEAD",
			Subjects:    []string{"Business", "MBA"},
			Description: "Global top 10 business school in Fontainebleau",
			Website:     "https://insead.edu",
		},
		{
			ID:          "z4GnHc8mPwRtKq1YvBdSe",
			CityID:      "Vg2qLxkM3pWbTzR4yNfJh",
			Slug:        "sciences-po",
			Name:        "Sciences Po",
			Subjects:    []string{"Political Science", "International Relations"},
			Description: "Leading political science university in Paris",
			Website:     "https://sciencespo.fr",
		},
	}

	for i := range schools {
		if err := repo.UpsertSchool(ctx, &schools[i]); err != nil {
			return fmt.Errorf("seed school %s: %w", schools[i].Slug, err)
		}
	}

	return nil
}
