package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/google/uuid"
)

// maxBodyBytes bounds request bodies. Findings records with photo URLs for
// every floor of a tall building stay well below it.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body is required")
		case errors.As(err, &maxErr):
			return domain.Invalid(op, "Request body is too large")
		default:
			return domain.Invalid(op, fmt.Sprintf("Invalid request body: %v", err))
		}
	}
	return nil
}

// pathUUID parses a UUID route wildcard.
func pathUUID(r *http.Request, op, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Invalid(op, fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// pageParams reads limit and offset query parameters. Missing or malformed
// values are left at zero for the service to default.
func pageParams(r *http.Request) (limit, offset int32) {
	q := r.URL.Query()
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 32); err == nil {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(q.Get("offset"), 10, 32); err == nil {
		offset = int32(v)
	}
	return limit, offset
}

// Date is a calendar date encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("date %q must be formatted YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// datePtr converts an optional Date to an optional time.
func datePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// toDate converts an optional time to an optional Date.
func toDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}
