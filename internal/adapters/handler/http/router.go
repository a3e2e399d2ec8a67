package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewHandler assembles the API router. authHandler and userHandler may be nil
// when the auth surface is not wired (tests).
func NewHandler(
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	resultHandler *ResultHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	jwtSecret string,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(CORS(allowedOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if authHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google/callback", authHandler.GoogleCallback)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticator([]byte(jwtSecret)))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		if userHandler != nil {
			r.With(RequireAuth).Get("/me", userHandler.GetMe)
		}

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.With(RequireAuth).Post("/", pollHandler.CreatePoll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.With(RequireAuth).Put("/", pollHandler.UpdatePoll)
				r.With(RequireAuth).Delete("/", pollHandler.DeletePoll)

				r.Get("/results", resultHandler.GetPollResults)
				r.Get("/my-votes", voteHandler.MyVotes)
				r.With(RequireAuth).Post("/votes", voteHandler.SubmitVote)
				r.With(RequireAuth).Delete("/votes/{optionID}", voteHandler.RemoveVote)
			})
		})
	})

	return r
}
