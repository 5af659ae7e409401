package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telemedix/telemed-api/internal/model"
)

func TestBuildPatientSearchNoFilters(t *testing.T) {
	query, args := buildPatientSearch(model.PatientSearchFilter{})

	assert.Contains(t, query, "WHERE 1=1")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "gender =")
	assert.Empty(t, args)
}

func TestBuildPatientSearchWithTerm(t *testing.T) {
	query, args := buildPatientSearch(model.PatientSearchFilter{Search: "jane"})

	assert.Contains(t, query, "first_name ILIKE $1")
	assert.Contains(t, query, "last_name ILIKE $2")
	assert.Contains(t, query, "email ILIKE $3")
	assert.Equal(t, []interface{}{"%jane%", "%jane%", "%jane%"}, args)

	// The raw term must never appear in the query text itself.
	assert.NotContains(t, query, "jane")
}

func TestBuildPatientSearchWithGender(t *testing.T) {
	query, args := buildPatientSearch(model.PatientSearchFilter{Gender: model.GenderFemale})

	assert.Contains(t, query, "gender = $1")
	assert.Equal(t, []interface{}{model.GenderFemale}, args)
	assert.NotContains(t, query, "Female")
}

func TestBuildPatientSearchCombined(t *testing.T) {
	query, args := buildPatientSearch(model.PatientSearchFilter{
		Search: "jane",
		Gender: model.GenderFemale,
	})

	assert.Contains(t, query, "first_name ILIKE $1")
	assert.Contains(t, query, "gender = $4")
	assert.Equal(t, []interface{}{"%jane%", "%jane%", "%jane%", model.GenderFemale}, args)

	// Both predicates are ANDed onto the base.
	assert.Equal(t, 2, strings.Count(query, " AND "))
}

func TestBuildPatientSearchInjectionAttemptStaysBound(t *testing.T) {
	hostile := "'; DROP TABLE patients; --"
	query, args := buildPatientSearch(model.PatientSearchFilter{Search: hostile})

	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, "%"+hostile+"%", args[0])
}
