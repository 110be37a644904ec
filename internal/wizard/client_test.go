package wizard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedForm(t *testing.T) *Form {
	t.Helper()
	f := NewAdmissionForm()
	for field, value := range map[string]string{
		"firstName":    "Aman",
		"lastName":     "Verma",
		"dateOfBirth":  "2010-05-01",
		"gender":       "male",
		"admissionNo":  "ADM500",
		"mobileNumber": "9876543210",
		"className":    "5",
	} {
		require.NoError(t, f.Set(field, value))
	}
	return f
}

func TestSubmitAdmissionBuildsMultipartRequest(t *testing.T) {
	var gotValues map[string][]string
	var gotFiles []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotValues = r.MultipartForm.Value
		for name := range r.MultipartForm.File {
			gotFiles = append(gotFiles, name)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"message":"ok","data":{"id":42,"firstName":"Aman","lastName":"Verma","admissionNo":"ADM500"}}`))
	}))
	defer srv.Close()

	form := completedForm(t)
	require.NoError(t, form.SetDocument("studentPhoto", &Document{Filename: "photo.jpg", Data: []byte("jpegdata")}))

	client := NewClient(srv.URL, WithSchoolID("7"))
	result, err := client.SubmitAdmission(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, "ADM500", result.AdmissionNo)

	assert.Equal(t, []string{"Aman"}, gotValues["firstName"])
	assert.Equal(t, []string{"7"}, gotValues["schoolId"])
	assert.Contains(t, gotValues, "father.name", "group scalars arrive as dotted keys")
	assert.Equal(t, []string{"documents.studentPhoto"}, gotFiles, "only attached slots become file parts")
}

func TestSubmitAdmissionErrorMessageSynthesis(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message field wins",
			status:  400,
			body:    `{"success":false,"message":"Missing required fields: First Name","error":"boom"}`,
			wantMsg: "Missing required fields: First Name",
		},
		{
			name:    "error field second",
			status:  500,
			body:    `{"success":false,"error":"db connection refused"}`,
			wantMsg: "db connection refused",
		},
		{
			name:    "field errors joined",
			status:  400,
			body:    `{"success":false,"errors":["First Name","Father's Name"]}`,
			wantMsg: "First Name, Father's Name",
		},
		{
			name:    "generic fallback for empty envelope",
			status:  502,
			body:    `{"success":false}`,
			wantMsg: "Server error (status 502)",
		},
		{
			name:    "generic fallback for unparsable body",
			status:  502,
			body:    `<html>Bad Gateway</html>`,
			wantMsg: "Server error (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.SubmitAdmission(context.Background(), completedForm(t))

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSubmitAdmissionNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(srv.URL)
	_, err := client.SubmitAdmission(context.Background(), completedForm(t))

	require.Error(t, err)
	assert.Equal(t, "Cannot connect to the server. Please try again later.", err.Error())
}
