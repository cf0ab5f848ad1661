package query

import (
	"strconv"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

// FieldKind selects the predicate shape generated for a filter field.
type FieldKind int

const (
	// Exact matches the column against the raw value, optionally validated
	// against an allow-list.
	Exact FieldKind = iota
	// Partial wraps the value in %...% for a LIKE substring search.
	Partial
	// Numeric requires the value to parse as an integer.
	Numeric
)

// Field declares one recognized query parameter for a resource.
type Field struct {
	Param   string
	Column  string
	Kind    FieldKind
	Allowed []string
}

// ResourceFilters is the ordered filter definition for one list endpoint.
// Fields produce predicates in declaration order; the date filter, when
// present, comes last. Query keys not declared here are ignored — the API
// deliberately tolerates unknown filter parameters.
type ResourceFilters struct {
	Fields []Field

	// DateColumn enables date filtering: either an exact match through
	// DateParam, or an inclusive [fecha_desde, fecha_hasta] range. An exact
	// date takes precedence over the range.
	DateColumn string
	DateParam  string
}

const dateLayout = "2006-01-02"

// BuildFilters turns the incoming query-parameter bag into SQL predicate
// fragments and a positionally matched argument list. It performs no I/O.
func BuildFilters(def ResourceFilters, params map[string]string) ([]string, []interface{}, error) {
	var predicates []string
	var args []interface{}

	for _, f := range def.Fields {
		raw, ok := params[f.Param]
		if !ok || raw == "" {
			continue
		}
		switch f.Kind {
		case Exact:
			if len(f.Allowed) > 0 && !contains(f.Allowed, raw) {
				return nil, nil, httpres.NewAllowedValuesError(f.Param, f.Allowed)
			}
			predicates = append(predicates, f.Column+" = ?")
			args = append(args, raw)
		case Partial:
			predicates = append(predicates, f.Column+" LIKE ?")
			args = append(args, "%"+raw+"%")
		case Numeric:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, nil, httpres.NewValidationError(f.Param, f.Param+" must be a number")
			}
			predicates = append(predicates, f.Column+" = ?")
			args = append(args, n)
		}
	}

	if def.DateColumn != "" {
		datePreds, dateArgs, err := buildDateFilter(def, params)
		if err != nil {
			return nil, nil, err
		}
		predicates = append(predicates, datePreds...)
		args = append(args, dateArgs...)
	}

	return predicates, args, nil
}

func buildDateFilter(def ResourceFilters, params map[string]string) ([]string, []interface{}, error) {
	if def.DateParam != "" {
		if raw := params[def.DateParam]; raw != "" {
			if _, err := time.Parse(dateLayout, raw); err != nil {
				return nil, nil, httpres.NewValidationError(def.DateParam, def.DateParam+" must be a valid date (YYYY-MM-DD)")
			}
			return []string{"DATE(" + def.DateColumn + ") = ?"}, []interface{}{raw}, nil
		}
	}

	var predicates []string
	var args []interface{}
	if raw := params["fecha_desde"]; raw != "" {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, nil, httpres.NewValidationError("fecha_desde", "fecha_desde must be a valid date (YYYY-MM-DD)")
		}
		predicates = append(predicates, "DATE("+def.DateColumn+") >= ?")
		args = append(args, raw)
	}
	if raw := params["fecha_hasta"]; raw != "" {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, nil, httpres.NewValidationError("fecha_hasta", "fecha_hasta must be a valid date (YYYY-MM-DD)")
		}
		predicates = append(predicates, "DATE("+def.DateColumn+") <= ?")
		args = append(args, raw)
	}
	return predicates, args, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
