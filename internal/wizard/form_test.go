package wizard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi1475/school-erp-backend/internal/app/models/dto"
)

func TestNewAdmissionFormHasEveryKeyEmpty(t *testing.T) {
	f := NewAdmissionForm()

	for _, field := range f.Fields() {
		assert.Empty(t, field.Value, "field %s must start empty", field.Key)
	}
	assert.Empty(t, f.Documents(), "no document slots attached initially")
}

func TestSetRejectsUnknownFields(t *testing.T) {
	f := NewAdmissionForm()

	assert.Error(t, f.Set("nickname", "x"))
	assert.Error(t, f.Set("father.shoeSize", "42"))
	assert.Error(t, f.Set("hobbies.first", "chess"))
	assert.Error(t, f.SetDocument("passport", &Document{Filename: "p.png"}))
}

func TestSetRoutesDottedFieldsIntoGroups(t *testing.T) {
	f := NewAdmissionForm()

	require.NoError(t, f.Set("father.name", "Rajesh"))
	require.NoError(t, f.Set("admitSession.class", "5"))
	require.NoError(t, f.Set("firstName", "Aman"))

	assert.Equal(t, "Rajesh", f.Get("father.name"))
	assert.Equal(t, "5", f.Get("admitSession.class"))
	assert.Equal(t, "Aman", f.Get("firstName"))
	assert.Empty(t, f.Get("father.occupation"), "sibling keys keep their values")
}

func TestFieldsExcludeDocuments(t *testing.T) {
	f := NewAdmissionForm()
	require.NoError(t, f.SetDocument("studentPhoto", &Document{Filename: "photo.jpg", Data: []byte{1}}))

	for _, field := range f.Fields() {
		assert.NotContains(t, field.Key, "documents", "document slots must not appear as scalar fields")
	}

	docs := f.Documents()
	require.Len(t, docs, 1)
	assert.Contains(t, docs, "documents.studentPhoto")
}

// The flattened client output must decode back into the same values through
// the server-side form parser.
func TestFlattenRoundTripsThroughServerParser(t *testing.T) {
	f := NewAdmissionForm()
	set := map[string]string{
		"firstName":              "Aman",
		"lastName":               "Verma",
		"dateOfBirth":            "2010-05-01",
		"gender":                 "male",
		"admissionNo":            "ADM500",
		"mobileNumber":           "9876543210",
		"className":              "5",
		"address.city":           "Delhi",
		"address.state":          "Delhi",
		"father.name":            "Rajesh Verma",
		"mother.name":            "Sunita Verma",
		"guardian.relation":      "uncle",
		"admitSession.class":     "5",
		"currentSession.section": "B",
		"transport.mode":         "bus",
		"lastEducation.tcDate":   "2024-03-31",
		"other.singleParent":     "yes",
		"academic.registrationNo": "REG-77",
	}
	for field, value := range set {
		require.NoError(t, f.Set(field, value))
	}

	values := url.Values{}
	for _, field := range f.Fields() {
		values.Set(field.Key, field.Value)
	}

	req := dto.ParseAdmissionForm(values)

	assert.Equal(t, "Aman", req.FirstName)
	assert.Equal(t, "Verma", req.LastName)
	assert.Equal(t, "ADM500", req.AdmissionNo)
	assert.Equal(t, "Delhi", req.Address.City)
	assert.Equal(t, "Rajesh Verma", req.Father.Name)
	assert.Equal(t, "Sunita Verma", req.Mother.Name)
	assert.Equal(t, "uncle", req.Guardian.Relation)
	assert.Equal(t, "5", req.AdmitSession.Class)
	assert.Equal(t, "B", req.CurrentSession.Section)
	assert.Equal(t, "bus", req.Transport.Mode)
	assert.Equal(t, "2024-03-31", req.LastEducation.TCDate)
	assert.Equal(t, "yes", req.Other.SingleParent)
	assert.Equal(t, "REG-77", req.Academic.RegistrationNo)
	assert.Empty(t, req.MissingRequired())
}
