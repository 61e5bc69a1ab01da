package sqlite

import (
	"database/sql"
	"encoding/json"

	"bpauto/internal/domain"
)

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// marshalObject stores the full object as JSON; name, class and container
// are also kept in indexed columns
func marshalObject(obj domain.Object) ([]byte, error) {
	return json.Marshal(obj)
}

func unmarshalObject(data []byte) (domain.Object, error) {
	var obj domain.Object
	err := json.Unmarshal(data, &obj)
	return obj, err
}
