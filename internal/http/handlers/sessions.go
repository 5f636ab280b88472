package handlers

import "net/http"

// SessionCreate issues a fresh session in the Initial state.
func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := a.Sessions.Create()
	a.json(w, http.StatusCreated, sess.Snapshot())
}

// SessionState returns the full observable state of the session.
func (a *App) SessionState(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}

// SessionReset performs the start-over action from any state: every
// accumulated value is cleared and any in-flight generation is abandoned.
func (a *App) SessionReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	a.json(w, http.StatusOK, sess.Snapshot())
}

// Health is the liveness probe.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": a.Config.Configured(),
	})
}
