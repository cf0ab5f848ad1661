package query

import (
	"strings"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

// UpdateField maps one JSON payload key to its database column.
type UpdateField struct {
	Key    string
	Column string
}

// UpdateBuilder assembles a partial-update SET clause from an enumerated set
// of updatable fields. Payload keys outside that set are rejected rather than
// interpolated.
type UpdateBuilder struct {
	fields []UpdateField
	sets   []string
	args   []interface{}
}

func NewUpdateBuilder(fields []UpdateField) *UpdateBuilder {
	return &UpdateBuilder{fields: fields}
}

// Apply folds the payload into the builder. Columns are added in field
// declaration order so the generated SQL is deterministic.
func (b *UpdateBuilder) Apply(payload map[string]interface{}) error {
	known := make(map[string]bool, len(b.fields))
	for _, f := range b.fields {
		known[f.Key] = true
	}
	for k := range payload {
		if !known[k] {
			return httpres.NewValidationError(k, "unknown field: "+k)
		}
	}
	for _, f := range b.fields {
		if v, ok := payload[f.Key]; ok {
			b.sets = append(b.sets, f.Column+" = ?")
			b.args = append(b.args, v)
		}
	}
	return nil
}

// Empty reports whether no updatable field was supplied.
func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Clause returns the "col = ?, col = ?" fragment and its arguments.
func (b *UpdateBuilder) Clause() (string, []interface{}) {
	return strings.Join(b.sets, ", "), b.args
}

// NormalizeDate validates a date-typed update value before it reaches the
// datastore. Nil and the empty string clear the column; anything else must be
// a YYYY-MM-DD string and comes back as a time.Time.
func NormalizeDate(field string, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, httpres.NewValidationError(field, field+" must be a valid date (YYYY-MM-DD)")
	}
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, httpres.NewValidationError(field, field+" must be a valid date (YYYY-MM-DD)")
	}
	return d, nil
}
