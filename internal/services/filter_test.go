package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastoral-bknd/internal/models"
	"pastoral-bknd/internal/services"
)

func filterFixture() []models.Parish {
	return []models.Parish{
		{
			ID: "a", Name: "Parroquia San José", Country: "Argentina", Province: "Buenos Aires", City: "CABA",
			Services: []models.ParishService{
				{Type: "misa", Name: "Misa dominical", Schedule: []models.ScheduleEntry{
					{Day: "sunday", Times: []models.TimeRange{{Start: "09:00"}}},
				}},
			},
		},
		{
			ID: "b", Name: "Parroquia Santa María", Country: "Argentina", Province: "Córdoba", City: "Córdoba Capital",
			Services: []models.ParishService{
				{Type: "bautismo", Schedule: []models.ScheduleEntry{
					{Day: "saturday", Times: []models.TimeRange{{Start: "19:00"}}},
				}},
			},
		},
		{
			ID: "c", Name: "Iglesia Santa Lucía", Country: "Uruguay", Province: "Montevideo", City: "Montevideo",
			Services: []models.ParishService{
				{Type: "misa", Schedule: []models.ScheduleEntry{
					{Day: "sunday", Times: []models.TimeRange{{Start: "18:30"}}},
				}},
			},
		},
	}
}

// TestFilterParishes_DefaultStatePassesEverything: the default filter state
// is the identity.
func TestFilterParishes_DefaultStatePassesEverything(t *testing.T) {
	parishes := filterFixture()
	got := services.FilterParishes(parishes, models.DefaultFilterState())
	require.Equal(t, parishes, got)
}

// TestFilterParishes_Pure: same inputs, same order-preserving output, and
// the input slice is untouched.
func TestFilterParishes_Pure(t *testing.T) {
	parishes := filterFixture()
	f := models.FilterState{Country: "Argentina"}

	first := services.FilterParishes(parishes, f)
	second := services.FilterParishes(parishes, f)
	require.Equal(t, first, second)

	require.Equal(t, filterFixture(), parishes)
	require.Equal(t, []string{"a", "b"}, []string{first[0].ID, first[1].ID})
}

// TestFilterParishes_ServiceSubstringMatch: "misa" matches "Misa dominical"
// case-insensitively; a parish offering only "bautismo" is excluded.
func TestFilterParishes_ServiceSubstringMatch(t *testing.T) {
	got := services.FilterParishes(filterFixture(), models.FilterState{Services: []string{"misa"}})

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestFilterParishes_SelectedIDs(t *testing.T) {
	got := services.FilterParishes(filterFixture(), models.FilterState{SelectedIDs: []string{"c"}})
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestFilterParishes_CountryAndProvince(t *testing.T) {
	got := services.FilterParishes(filterFixture(), models.FilterState{
		Country: "Argentina", Province: "Córdoba",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	// province without a country is dropped by normalization
	got = services.FilterParishes(filterFixture(), models.FilterState{
		Country: models.FilterAll, Province: "Córdoba",
	})
	require.Len(t, got, 3)
}

func TestFilterParishes_Search(t *testing.T) {
	got := services.FilterParishes(filterFixture(), models.FilterState{Search: "santa"})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterParishes_DayTimeBuckets(t *testing.T) {
	morning := services.FilterParishes(filterFixture(), models.FilterState{DayTime: "morning"})
	require.Len(t, morning, 1)
	assert.Equal(t, "a", morning[0].ID)

	evening := services.FilterParishes(filterFixture(), models.FilterState{DayTime: "evening"})
	require.Len(t, evening, 2)
}
