package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

const sessionName = "expenses"

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string // success or error
	Message string
}

// addFlash queues a flash message in the session.
func addFlash(store sessions.Store, w http.ResponseWriter, r *http.Request, kind, message string) {
	session, _ := store.Get(r, sessionName)
	session.AddFlash(kind + "|" + message)
	_ = session.Save(r, w)
}

// popFlashes drains queued flash messages from the session.
func popFlashes(store sessions.Store, w http.ResponseWriter, r *http.Request) []Flash {
	session, _ := store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, message, found := strings.Cut(s, "|")
		if !found {
			kind, message = "success", s
		}
		flashes = append(flashes, Flash{Kind: kind, Message: message})
	}
	return flashes
}
