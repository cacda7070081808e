package helpers

import "database/sql"

// NullIntFromPtr converts an *int to sql.NullInt32. A nil pointer maps to
// SQL NULL, which is how absent unit test marks are stored.
func NullIntFromPtr(i *int) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*i), Valid: true}
}

// PtrFromNullInt converts a scanned sql.NullInt32 back to *int.
func PtrFromNullInt(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}
