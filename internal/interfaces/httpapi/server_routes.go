package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/posts", handler.ListOpenPosts)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedPlayerRoutes(mux, handler, verifier)
	registerAuthorizedAvailabilityRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedInviteRoutes(mux, handler, verifier)
	registerAuthorizedPostRoutes(mux, handler, verifier)
	registerAuthorizedNotificationRoutes(mux, handler, verifier)
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyProfile)))
	mux.Handle("GET /v1/me/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetMyStats)))
}

func registerAuthorizedPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players/{playerID}/h2h", RequireAuth(verifier, http.HandlerFunc(handler.GetHeadToHead)))
	mux.Handle("GET /v1/matchmaking/suggestions", RequireAuth(verifier, http.HandlerFunc(handler.GetSuggestions)))
}

func registerAuthorizedAvailabilityRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/availability", RequireAuth(verifier, http.HandlerFunc(handler.ListMyAvailability)))
	mux.Handle("POST /v1/availability", RequireAuth(verifier, http.HandlerFunc(handler.AddAvailability)))
	mux.Handle("DELETE /v1/availability/{slotID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveAvailability)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMyMatches)))
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ScheduleMatch)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("POST /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("POST /v1/matches/{matchID}/confirm", RequireAuth(verifier, http.HandlerFunc(handler.ConfirmScore)))
	mux.Handle("POST /v1/matches/{matchID}/dispute", RequireAuth(verifier, http.HandlerFunc(handler.DisputeScore)))
	mux.Handle("POST /v1/matches/{matchID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/matches/{matchID}/no-show", RequireAuth(verifier, http.HandlerFunc(handler.MarkMatchNoShow)))
}

func registerAuthorizedInviteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/invites", RequireAuth(verifier, http.HandlerFunc(handler.ListMyInvites)))
	mux.Handle("POST /v1/invites", RequireAuth(verifier, http.HandlerFunc(handler.SendInvite)))
	mux.Handle("POST /v1/invites/{inviteID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptInvite)))
	mux.Handle("POST /v1/invites/{inviteID}/decline", RequireAuth(verifier, http.HandlerFunc(handler.DeclineInvite)))
}

func registerAuthorizedPostRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/posts", RequireAuth(verifier, http.HandlerFunc(handler.CreatePost)))
	mux.Handle("POST /v1/posts/{postID}/claim", RequireAuth(verifier, http.HandlerFunc(handler.ClaimPost)))
}

func registerAuthorizedNotificationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/notifications", RequireAuth(verifier, http.HandlerFunc(handler.ListMyNotifications)))
	mux.Handle("POST /v1/notifications/read", RequireAuth(verifier, http.HandlerFunc(handler.MarkNotificationsRead)))
}
