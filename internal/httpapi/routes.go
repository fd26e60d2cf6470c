// Package httpapi is the thin outer HTTP surface spec §6 names as present
// but out of the core's scope: collection lookup, per-session user lists,
// a secret-guarded debug surface, and a health check. Grounded on
// DoyleJ11-lol-draft-backend's internal/httpapi/routes.go chi wiring.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/cardtable/boosterdraft/internal/registry"
)

// NewRouter builds the chi router over reg. debugSecret gates the debug
// endpoints; an empty secret disables them entirely rather than accepting
// any value.
func NewRouter(reg *registry.Registry, debugSecret string) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", Healthz)
	r.Get("/getUsers/{sessionID}", GetUsers(reg))
	r.Get("/getCollection", GetCollection(reg))
	r.Get("/getCollection/{userID}", GetCollection(reg))
	if debugSecret != "" {
		r.Route("/debug", func(dr chi.Router) {
			dr.Use(requireSecret(debugSecret))
			dr.Get("/sessions", DebugSessions(reg))
		})
	}
	return r
}

// Healthz reports process liveness; it never touches the registry, so a
// wedged session mailbox can't fail the check.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetUsers returns the number of seated users in a session (spec §6
// /getUsers/:sid).
func GetUsers(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := models.SessionID(chi.URLParam(r, "sessionID"))
		s, ok := reg.Get(sid)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, s.UserCount())
	}
}

// GetCollection answers /getCollection[/:id] (spec §6). Without an id it is
// a 400; for a user not seated in any session it is a 404; otherwise it
// writes an empty JSON object. The participant's stored collection is not
// read or returned.
func GetCollection(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		if userID == "" {
			http.Error(w, "missing user id", http.StatusBadRequest)
			return
		}
		uid := models.UserID(userID)
		if _, ok := reg.SessionFor(uid); !ok {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		// Collections live on the session package's Participant record,
		// which this package does not read; the response is always empty.
		writeJSON(w, map[string]int{})
	}
}

// DebugSessions lists every live session id, for operator inspection.
func DebugSessions(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reg.AllSessions())
	}
}

func requireSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Debug-Secret") != secret {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
