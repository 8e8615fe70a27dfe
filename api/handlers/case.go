package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ecovigia/wildlife-case-api/api"
	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/config"
	"github.com/ecovigia/wildlife-case-api/models"
)

// Case exported for testing purposes
type Case struct {
	Service *cases.Service
	Hub     *CaseHub
}

// statusUpdateRequest is the body for PUT /case/{case_id}/status. The
// expectedUpdatedAt precondition guards against concurrent edits.
type statusUpdateRequest struct {
	Status            models.ProcessStatus `json:"status"`
	ExpectedUpdatedAt time.Time            `json:"expectedUpdatedAt"`
}

// CreateCaseHandler validates an intake draft and stores a new case
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var draft cases.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	actor := api.UserFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := c.Service.Create(ctx, draft, actor)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	if c.Hub != nil {
		c.Hub.BroadcastCaseCreated(created)
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseByIDHandler returns a case by ID
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	zap.S().Debugf("case_id: %v", caseID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Service.Get(ctx, caseID)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CasesHandler returns all cases matching the filter query params
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	filter := caseFilterFromQuery(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Service.List(ctx, filter)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Process{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CasesByUserIDHandler returns all cases created by the given user
func (c Case) CasesByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: '%v'", userID)

	filter := caseFilterFromQuery(r)
	filter.CreatedBy = userID

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Service.List(ctx, filter)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Process{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseStatsHandler returns the aggregated counts for all cases
// matching the filter query params
func (c Case) CaseStatsHandler(w http.ResponseWriter, r *http.Request) {
	filter := caseFilterFromQuery(r)
	// stats aggregate the whole matching set
	filter.Limit = 0
	filter.Page = 0

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := c.Service.Stats(ctx, filter)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateCaseStatusHandler moves a case to a new lifecycle state
func (c Case) UpdateCaseStatusHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Service.Transition(ctx, caseID, req.Status, req.ExpectedUpdatedAt)
	if err != nil {
		writeCaseError(w, err)
		return
	}

	if c.Hub != nil {
		c.Hub.BroadcastStatusChanged(updated)
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// writeCaseError maps the engine's error taxonomy onto HTTP statuses
func writeCaseError(w http.ResponseWriter, err error) {
	var validation *cases.ValidationError
	if errors.As(err, &validation) {
		b, mErr := json.Marshal(models.ValidationErrorResponse{
			Message: "draft failed validation",
			Fields:  validation.Fields,
		})
		if mErr != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, mErr)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write(b)
		return
	}

	var notFound *cases.NotFoundError
	if errors.As(err, &notFound) {
		config.ErrorStatus("case not found", http.StatusNotFound, w, err)
		return
	}

	var conflict *cases.ConflictError
	if errors.As(err, &conflict) {
		config.ErrorStatus("case was modified by another update", http.StatusConflict, w, err)
		return
	}

	var illegal *cases.IllegalTransitionError
	if errors.As(err, &illegal) {
		config.ErrorStatus("illegal status transition", http.StatusUnprocessableEntity, w, err)
		return
	}

	var timeout *cases.TimeoutError
	if errors.As(err, &timeout) {
		config.ErrorStatus("query timed out", http.StatusGatewayTimeout, w, err)
		return
	}

	config.ErrorStatus("case store failure", http.StatusInternalServerError, w, err)
}

// caseFilterFromQuery builds the case filter from query params. Absent
// params impose no constraint.
func caseFilterFromQuery(r *http.Request) cases.Filter {
	q := r.URL.Query()
	f := cases.Filter{
		CaseType:     models.CaseType(q.Get("caseType")),
		Status:       models.ProcessStatus(q.Get("status")),
		ActivityType: models.ActivityType(q.Get("activityType")),
		Department:   q.Get("department"),
		Municipality: q.Get("municipality"),
	}

	if raw := q.Get("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			from := t.UTC()
			f.From = &from
		} else {
			zap.S().Warnf("ignoring unparseable from param: %v", err)
		}
	}
	if raw := q.Get("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			to := t.UTC()
			f.To = &to
		} else {
			zap.S().Warnf("ignoring unparseable to param: %v", err)
		}
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		zap.S().Debugf("limit not set, returning the full result set")
		limit = 0
	}
	f.Limit = int64(limit)
	f.Page = int64(getPage(0, r))
	return f
}

func getPage(page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		return page
	}
	parsed, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		return page
	}
	if parsed < 0 {
		zap.S().Warnf(fmt.Sprintf("cannot process negative page number. Got: %v", parsed))
		return 0
	}
	return parsed
}
