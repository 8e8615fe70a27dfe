package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecovigia/wildlife-case-api/api"
	"github.com/ecovigia/wildlife-case-api/config"
	"github.com/ecovigia/wildlife-case-api/databases"
	"github.com/ecovigia/wildlife-case-api/models"
)

// Species exported for testing purposes
type Species struct {
	DB databases.SpeciesDatabase
}

// SpeciesSuggestionsHandler returns catalog entries for the intake
// input-assist lists, optionally narrowed by kingdom and fauna class
func (s Species) SpeciesSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	if kingdom := q.Get("kingdom"); kingdom != "" {
		filter["kingdom"] = kingdom
	}
	if class := q.Get("class"); class != "" {
		filter["class"] = class
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := options.Find().SetSort(bson.M{"commonName": 1})
	dbResp, err := s.DB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get species suggestions", http.StatusNotFound, w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Species{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RegionsHandler returns the fixed administrative region list used by
// the location pickers
func RegionsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(models.Departments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
