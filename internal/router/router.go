package router

import (
	"net/http"

	_ "pet-dispatch/docs"
	mem "pet-dispatch/internal/adapters/storage/memory"
	pg "pet-dispatch/internal/adapters/storage/postgres"
	"pet-dispatch/internal/domain/accounts"
	"pet-dispatch/internal/domain/pets"
	"pet-dispatch/internal/domain/ratings"
	"pet-dispatch/internal/domain/requests"
	"pet-dispatch/internal/middleware"
	"pet-dispatch/internal/platform/logger"
	"pet-dispatch/internal/platform/metrics"
	"pet-dispatch/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// RPS <= 0 desactiva el límite.
	RateLimit middleware.RateLimitConfig
}

type repos struct {
	accounts accounts.Repository
	pets     pets.Repository
	requests requests.Repository
	ratings  ratings.Repository
}

func newRepos(db *sqlx.DB) repos {
	if db != nil {
		return repos{
			accounts: pg.NewAccountsRepo(db),
			pets:     pg.NewPetsRepo(db),
			requests: pg.NewRequestsRepo(db),
			ratings:  pg.NewRatingsRepo(db),
		}
	}
	return repos{
		accounts: mem.NewAccountRepo(),
		pets:     mem.NewPetRepo(),
		requests: mem.NewRequestRepo(),
		ratings:  mem.NewRatingRepo(),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New("pet_dispatch")
	}

	// Services por módulo
	rp := newRepos(opts.DB)
	accountsSvc := accounts.NewService(rp.accounts)
	petsSvc := pets.NewService(rp.pets)
	ratingsSvc := ratings.NewService(rp.ratings, rp.requests, accountsSvc, m)
	requestsSvc := requests.NewService(rp.requests, petsSvc, ratingsSvc, m)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)
	r.Use(middleware.RequestLogger(log))
	if opts.RateLimit.RPS > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimit).Middleware)
	}

	// Sin rol en el token => se toma de la cuenta registrada.
	r.Use(middleware.AuthContext(opts.AuthVerifier, accountsSvc))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc)
	pets.RegisterRoutes(r, petsSvc)
	requests.RegisterRoutes(r, requestsSvc, ratings.RequestRoutes(ratingsSvc))
	ratings.RegisterRoutes(r, ratingsSvc)

	return r
}
