package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinspire/internal/config"
	"pinspire/internal/handler"
	"pinspire/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	aiHandler *handler.AIHandler,
	postHandler *handler.PostHandler,
	pinterestHandler *handler.PinterestHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", authHandler.Signup)
			auth.Post("/login", authHandler.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
			auth.With(authMiddleware.RequireAuth).Put("/update-profile", authHandler.UpdateProfile)
			auth.With(authMiddleware.RequireAuth).Put("/update-password", authHandler.UpdatePassword)
		})

		api.Route("/ai", func(ai chi.Router) {
			ai.Use(authMiddleware.RequireAuth)
			ai.Post("/generate-caption", aiHandler.GenerateCaption)
			ai.Post("/suggest-hashtags", aiHandler.SuggestHashtags)
			ai.Post("/generate-image", aiHandler.GenerateImage)
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.Use(authMiddleware.RequireAuth)
			posts.Get("/", postHandler.List)
			posts.Post("/", postHandler.Create)
			posts.Get("/{post_id}", postHandler.Get)
			posts.Put("/{post_id}", postHandler.Update)
			posts.Delete("/{post_id}", postHandler.Delete)
		})

		api.Route("/pinterest", func(pin chi.Router) {
			pin.Use(authMiddleware.RequireAuth)
			pin.Get("/mode", pinterestHandler.Mode)
			pin.Get("/connect", pinterestHandler.Connect)
			pin.Post("/callback", pinterestHandler.Callback)
			pin.Post("/disconnect", pinterestHandler.Disconnect)
			pin.Get("/credentials", pinterestHandler.GetCredentials)
			pin.Put("/credentials", pinterestHandler.SaveCredentials)
			pin.Delete("/credentials", pinterestHandler.DeleteCredentials)
			pin.Get("/boards", pinterestHandler.Boards)
			pin.Post("/post/{post_id}", pinterestHandler.Publish)
		})
	})

	return r
}
