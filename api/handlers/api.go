package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ecovigia/wildlife-case-api/api"
	"github.com/ecovigia/wildlife-case-api/api/scheduler"
	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/config"
	"github.com/ecovigia/wildlife-case-api/databases"
	"github.com/ecovigia/wildlife-case-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Hub       *CaseHub
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper), Config: &a.Config}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	if a.Hub == nil {
		a.Hub = NewCaseHub()
	}

	caseService := cases.NewService(databases.NewCaseRepository(databases.NewCaseDatabase(a.dbHelper)))
	c := Case{Service: caseService, Hub: a.Hub}
	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	s := Species{DB: databases.NewSpeciesDatabase(a.dbHelper)}
	e := Evidence{}
	metricsHandler := MetricsHandler{}

	r.Use(api.MetricsMiddleware)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws/cases", a.Hub.ServeWS)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	// bounded handler time on the api surface; /ws/cases stays
	// long-lived so the timeout only wraps the subrouter
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")

	apiCreate.Handle("/case", api.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}/status", api.Middleware(http.HandlerFunc(c.UpdateCaseStatusHandler))).Methods("PUT")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases/stats", api.Middleware(http.HandlerFunc(c.CaseStatsHandler))).Methods("GET")
	apiCreate.Handle("/cases/user/{user_id}", api.Middleware(http.HandlerFunc(c.CasesByUserIDHandler))).Methods("GET")

	apiCreate.Handle("/species/suggestions", api.Middleware(http.HandlerFunc(s.SpeciesSuggestionsHandler))).Methods("GET")
	apiCreate.Handle("/regions", api.Middleware(http.HandlerFunc(RegionsHandler))).Methods("GET")

	apiCreate.Handle("/evidence/upload", api.Middleware(http.HandlerFunc(e.UploadHandler))).Methods("POST")
	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(e.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/metrics/summary", api.Middleware(http.HandlerFunc(metricsHandler.GetMetricsSummary))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("wildlife-case-api has connected to the database")

	// start the case follow-up jobs
	a.Scheduler = scheduler.NewScheduler(
		databases.NewCaseDatabase(a.dbHelper),
		databases.NewUserDatabase(a.dbHelper),
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
