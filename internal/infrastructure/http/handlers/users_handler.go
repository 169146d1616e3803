package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/user"
)

// UsersHandler handles /api/users.
type UsersHandler struct {
	search *user.SearchUsers
	log    zerolog.Logger
}

func NewUsersHandler(store ports.Store, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{search: user.NewSearchUsers(store), log: log}
}

// Search backs the invite form: ?q= matches name or email, ?limit= caps results.
func (h *UsersHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	users, err := h.search.Execute(r.Context(), user.SearchUsersInput{
		ActorID: userID,
		Query:   r.URL.Query().Get("q"),
		Limit:   limit,
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUsers(users))
}
