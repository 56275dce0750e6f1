package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triptribe/backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Me       *MeHandler
	Trip     *TripHandler
	Activity *ActivityHandler
	Health   *HealthHandler

	// BlobFS, when set, serves stored photos under /blobs/.
	BlobFS http.FileSystem
}

// NewRouter assembles the route tree. The given middleware chain wraps the
// whole tree; authenticated subtrees additionally require a user id on the
// context.
func NewRouter(h Handlers, base middleware.Middleware) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.Health.Health)
	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/password-reset", h.Auth.RequestPasswordReset)
		r.Post("/password-reset/confirm", h.Auth.ResetPassword)
		r.With(middleware.RequireAuth).Post("/logout", h.Auth.Logout)
	})

	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.Me.Get)
		r.Patch("/", h.Me.UpdateProfile)
		r.Put("/photo", h.Me.UpdatePhoto)
		r.Delete("/", h.Me.Delete)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.Trip.Create)
		r.Get("/", h.Trip.List)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", h.Trip.Get)
			r.Put("/", h.Trip.Update)
			r.Delete("/", h.Trip.Delete)

			r.Post("/invitations", h.Trip.Invite)
			r.Post("/invitations/{invitationID}/respond", h.Trip.Respond)
			r.Delete("/invitations/{invitationID}", h.Trip.CancelInvitation)

			r.Post("/activities", h.Activity.Create)
			r.Get("/activities", h.Activity.List)
			r.Get("/activities/{activityID}", h.Activity.Get)
			r.Put("/activities/{activityID}", h.Activity.Update)
			r.Delete("/activities/{activityID}", h.Activity.Delete)
		})
	})

	r.With(middleware.RequireAuth).Get("/invitations", h.Trip.Pending)

	if h.BlobFS != nil {
		r.Handle("/blobs/*", http.StripPrefix("/blobs/", http.FileServer(h.BlobFS)))
	}

	return base(r)
}
