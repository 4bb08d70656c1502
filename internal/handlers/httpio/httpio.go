package httpio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserRoles = "X-User-Roles"

	dateLayout = "2006-01-02"
)

// ErrorBody is the JSON payload written for every failed request.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// BadRequest marks a request that could not be parsed. It is reported as a
// validation failure.
func BadRequest(op, field, message string) error {
	return ledger.NewValidationError(op, field, message)
}

// DecodeJSON reads the request body into dst.
func DecodeJSON(req *http.Request, op string, dst any) error {
	if req.Body == nil {
		return BadRequest(op, "body", "request body is required")
	}
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		return BadRequest(op, "body", "malformed JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindValidation:
		return http.StatusBadRequest
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindConflict:
		return http.StatusConflict
	case ledger.KindReference:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error body and returns it so handlers can
// end with `return httpio.WriteError(w, err)`. Store failures never leak
// their cause to the client.
func WriteError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)
	body := ErrorBody{Kind: ledger.KindOf(err).String(), Message: "internal error"}

	if status != http.StatusInternalServerError {
		var lerr *ledger.Error
		if errors.As(err, &lerr) {
			body.Field = lerr.Field
			body.Message = lerr.Message
			if body.Message == "" {
				body.Message = lerr.Kind.String()
			}
		}
	}

	WriteJSON(w, status, errorEnvelope{Error: body})
	return err
}

// IdentityFromRequest reads the actor forwarded by the gateway. Missing
// headers are left empty and rejected later by the audit stamp.
func IdentityFromRequest(req *http.Request, op string) (ledger.Identity, error) {
	identity := ledger.Identity{
		DisplayName: strings.TrimSpace(req.Header.Get(HeaderUserName)),
	}

	if raw := strings.TrimSpace(req.Header.Get(HeaderUserID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ledger.Identity{}, BadRequest(op, "actor_id", "invalid "+HeaderUserID+" header")
		}
		identity.UserID = id
	}

	for _, role := range strings.Split(req.Header.Get(HeaderUserRoles), ",") {
		if role = strings.TrimSpace(role); role != "" {
			identity.Roles = append(identity.Roles, role)
		}
	}
	return identity, nil
}

// PathID parses the {id} URL parameter.
func PathID(req *http.Request, op string) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(req, "id"))
	if err != nil {
		return uuid.Nil, BadRequest(op, "id", "invalid id")
	}
	return id, nil
}

// QueryTime parses an optional RFC3339 query parameter.
func QueryTime(req *http.Request, op, name string) (*time.Time, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, BadRequest(op, name, "must be an RFC3339 timestamp")
	}
	return &t, nil
}

// QueryWindow reads the from and to query parameters.
func QueryWindow(req *http.Request, op string) (ledger.Window, error) {
	from, err := QueryTime(req, op, "from")
	if err != nil {
		return ledger.Window{}, err
	}
	to, err := QueryTime(req, op, "to")
	if err != nil {
		return ledger.Window{}, err
	}
	return ledger.Window{From: from, To: to}, nil
}

// QueryDate parses a required YYYY-MM-DD query parameter in loc.
func QueryDate(req *http.Request, op, name string, loc *time.Location) (time.Time, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, BadRequest(op, name, "is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, BadRequest(op, name, "must be formatted as YYYY-MM-DD")
	}
	return d, nil
}

// FormatTime renders t the way every response does.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
