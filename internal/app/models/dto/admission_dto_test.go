package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdmissionFormRoutesDottedKeys(t *testing.T) {
	values := url.Values{}
	values.Set("firstName", "  Aman ")
	values.Set("lastName", "Verma")
	values.Set("admissionNo", "ADM500")
	values.Set("father.name", "Rajesh Verma")
	values.Set("admitSession.class", "5")
	values.Set("currentSession.rollNo", "17")
	values.Set("lastEducation.tcDate", "2024-03-31")
	values.Set("other.belongsToBPL", "yes")
	values.Set("schoolId", "3")

	req := ParseAdmissionForm(values)

	assert.Equal(t, "Aman", req.FirstName, "values arrive trimmed")
	assert.Equal(t, "Verma", req.LastName)
	assert.Equal(t, "ADM500", req.AdmissionNo)
	assert.Equal(t, "Rajesh Verma", req.Father.Name)
	assert.Equal(t, "5", req.AdmitSession.Class)
	assert.Equal(t, "17", req.CurrentSession.RollNo)
	assert.Equal(t, "2024-03-31", req.LastEducation.TCDate)
	assert.Equal(t, "yes", req.Other.BelongsToBPL)
	assert.Equal(t, "3", req.SchoolID)
}

func TestMissingRequiredReturnsLabelsInOrder(t *testing.T) {
	req := ParseAdmissionForm(url.Values{})

	assert.Equal(t, []string{
		"First Name", "Last Name", "Admission No", "Gender", "Mobile Number",
		"Class Name", "City", "State", "Father's Name", "Mother's Name",
	}, req.MissingRequired())
}

func TestMissingRequiredEmptyForCompleteRequest(t *testing.T) {
	values := url.Values{}
	values.Set("firstName", "Aman")
	values.Set("lastName", "Verma")
	values.Set("admissionNo", "ADM500")
	values.Set("gender", "male")
	values.Set("mobileNumber", "9876543210")
	values.Set("className", "5")
	values.Set("address.city", "Delhi")
	values.Set("address.state", "Delhi")
	values.Set("father.name", "Rajesh Verma")
	values.Set("mother.name", "Sunita Verma")

	assert.Empty(t, ParseAdmissionForm(values).MissingRequired())
}

func TestMissingRequiredTreatsBlankAsMissing(t *testing.T) {
	values := url.Values{}
	values.Set("firstName", "Aman")
	values.Set("admissionNo", "   ")

	missing := ParseAdmissionForm(values).MissingRequired()

	assert.NotContains(t, missing, "First Name")
	assert.Contains(t, missing, "Admission No", "whitespace-only values count as missing")
}
