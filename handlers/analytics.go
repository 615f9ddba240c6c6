package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/quikbite/quikbite/database/dbhelper"
)

// CategoryPopularity reports order counts and revenue per menu category,
// optionally bounded by an inclusive ?from=&to= date range (RFC 3339 or
// YYYY-MM-DD).
func CategoryPopularity(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"), false)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"), true)
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}

	report, err := dbhelper.CategoryPopularityReport(from, to)
	if err != nil {
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil, err
		}
		if endOfDay {
			// Date-only upper bounds are inclusive of the whole day.
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return &t, nil
}
