package handler

import (
	"net/http"

	"taskvault/internal/httputil"
	"taskvault/internal/permission"
)

// getActor extracts the authenticated actor from the request context.
// The auth middleware populates it for every protected route; a miss
// means the route was wired without authentication and is answered 401.
func getActor(w http.ResponseWriter, r *http.Request) (permission.Actor, bool) {
	actor, ok := permission.ActorFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated")
	}
	return actor, ok
}
