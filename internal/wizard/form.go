// Package wizard is a client SDK for the admission API: a multi-step form
// state machine over the admission record, plus an HTTP client that submits
// the record as a flattened multipart request.
package wizard

import (
	"fmt"
	"sort"
)

// Document is one file attached to the admission form.
type Document struct {
	Filename string
	Data     []byte
}

// Field is one flattened scalar part of the outgoing request.
type Field struct {
	Key   string
	Value string
}

// documentSlots are the accepted attachment names.
var documentSlots = []string{
	"birthCertificate",
	"transferCertificate",
	"markSheet",
	"aadhaarCard",
	"studentPhoto",
	"fatherPhoto",
	"motherPhoto",
}

var topLevelKeys = []string{
	"firstName", "middleName", "lastName", "dateOfBirth", "admissionDate",
	"gender", "bloodGroup", "nationality", "religion", "category",
	"admissionNo", "mobileNumber", "email", "className", "section", "rollNumber",
}

var sessionKeys = []string{"group", "stream", "class", "section", "rollNo", "semester", "feeGroup", "house"}

var groupKeys = map[string][]string{
	"address":        {"houseNo", "street", "city", "state", "pinCode"},
	"father":         {"name", "occupation", "contactNumber", "email"},
	"mother":         {"name", "occupation", "contactNumber"},
	"guardian":       {"name", "relation", "contactNumber"},
	"academic":       {"registrationNo"},
	"admitSession":   sessionKeys,
	"currentSession": sessionKeys,
	"transport":      {"mode", "area", "route", "stand", "vehicleNumber", "pickupPoint"},
	"lastEducation":  {"school", "address", "classAttended", "tcNumber", "tcDate", "academicYear"},
	"other":          {"belongsToBPL", "minority", "singleParent", "disability", "disabilityDetails", "onlyChild"},
}

// Form holds the admission record in progress. The key set is closed: every
// field exists from the start with an empty value, and setting an unknown
// field is an error rather than a silent new key.
type Form struct {
	scalars   map[string]string
	groups    map[string]map[string]string
	documents map[string]*Document
}

// NewAdmissionForm returns a form with every field present and empty.
func NewAdmissionForm() *Form {
	f := &Form{
		scalars:   make(map[string]string, len(topLevelKeys)),
		groups:    make(map[string]map[string]string, len(groupKeys)),
		documents: make(map[string]*Document, len(documentSlots)),
	}
	for _, key := range topLevelKeys {
		f.scalars[key] = ""
	}
	for group, keys := range groupKeys {
		m := make(map[string]string, len(keys))
		for _, key := range keys {
			m[key] = ""
		}
		f.groups[group] = m
	}
	for _, slot := range documentSlots {
		f.documents[slot] = nil
	}
	return f
}

// Set updates one field. A dotted name ("father.name") routes into the named
// group, replacing the group map with a merged copy.
func (f *Form) Set(field, value string) error {
	if group, key, ok := splitField(field); ok {
		current, exists := f.groups[group]
		if !exists {
			return fmt.Errorf("unknown field group: %s", group)
		}
		if _, exists := current[key]; !exists {
			return fmt.Errorf("unknown field: %s", field)
		}
		merged := make(map[string]string, len(current))
		for k, v := range current {
			merged[k] = v
		}
		merged[key] = value
		f.groups[group] = merged
		return nil
	}

	if _, exists := f.scalars[field]; !exists {
		return fmt.Errorf("unknown field: %s", field)
	}
	f.scalars[field] = value
	return nil
}

// Get returns one field's current value; unknown fields read as empty.
func (f *Form) Get(field string) string {
	if group, key, ok := splitField(field); ok {
		return f.groups[group][key]
	}
	return f.scalars[field]
}

// SetDocument attaches a file to a slot; nil clears it.
func (f *Form) SetDocument(slot string, doc *Document) error {
	if _, exists := f.documents[slot]; !exists {
		return fmt.Errorf("unknown document slot: %s", slot)
	}
	f.documents[slot] = doc
	return nil
}

// Document returns the file attached to a slot, or nil.
func (f *Form) Document(slot string) *Document {
	return f.documents[slot]
}

// Fields flattens the record: one entry per top-level scalar under its own
// name, one per group member under "group.key". Document slots are excluded;
// Documents() carries those. Order is deterministic.
func (f *Form) Fields() []Field {
	fields := make([]Field, 0, len(f.scalars)+40)
	for _, key := range topLevelKeys {
		fields = append(fields, Field{Key: key, Value: f.scalars[key]})
	}

	groups := make([]string, 0, len(f.groups))
	for group := range f.groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		for _, key := range groupKeys[group] {
			fields = append(fields, Field{Key: group + "." + key, Value: f.groups[group][key]})
		}
	}
	return fields
}

// Documents returns the attached files keyed by "documents.<slot>", skipping
// empty slots.
func (f *Form) Documents() map[string]*Document {
	out := make(map[string]*Document)
	for slot, doc := range f.documents {
		if doc != nil {
			out["documents."+slot] = doc
		}
	}
	return out
}

func splitField(field string) (group, key string, ok bool) {
	for i := 0; i < len(field); i++ {
		if field[i] == '.' {
			return field[:i], field[i+1:], true
		}
	}
	return "", "", false
}
