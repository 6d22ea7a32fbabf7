package repositories

import "strings"

// hotelColumns maps the filterable JSON field names to MySQL columns.
var hotelColumns = map[string]string{
	"name":              "name",
	"type":              "type",
	"city":              "city",
	"address":           "address",
	"description":       "description",
	"rating":            "rating",
	"reservationStatus": "reservation_status",
	"user":              "user_id",
}

// placeholders returns "?,?,?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
