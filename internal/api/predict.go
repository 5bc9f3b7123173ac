package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/model"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/predict"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/store"
)

type predictAPI struct {
	predictor *predict.Predictor
	store     *store.Store
	hub       *Hub
}

// predictRequest carries the five sensor readings in fixed column
// order. Missing fields default to zero, matching the form defaults.
type predictRequest struct {
	CH4L float64 `json:"ch4l"`
	CH4R float64 `json:"ch4r"`
	P    float64 `json:"p"`
	RsL  float64 `json:"rsl"`
	RsR  float64 `json:"rsr"`
}

type predictResponse struct {
	Leak     bool         `json:"leak"`
	LeakRate *float64     `json:"leak_rate,omitempty"`
	Alert    *model.Alert `json:"alert,omitempty"`
}

func (a *predictAPI) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	vector := predict.FeatureVector{req.CH4L, req.CH4R, req.P, req.RsL, req.RsR}
	for i, v := range vector {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("%s must be a non-negative number", predict.FeatureNames[i]),
			})
			return
		}
	}

	result := a.predictor.Predict(vector)
	if !result.Leak {
		log.Info().Msg("prediction: no leak")
		writeJSON(w, http.StatusOK, predictResponse{Leak: false})
		return
	}

	alert := model.Alert{
		CH4L:     req.CH4L,
		CH4R:     req.CH4R,
		P:        req.P,
		RsL:      req.RsL,
		RsR:      req.RsR,
		LeakRate: result.Rate,
	}
	if _, err := a.store.InsertAlert(&alert); err != nil {
		log.Error().Err(err).Msg("failed to store alert")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	log.Info().Int64("id", alert.ID).Float64("leak_rate", result.Rate).Msg("prediction: leak detected")
	a.hub.BroadcastAlert(alert)

	writeJSON(w, http.StatusOK, predictResponse{Leak: true, LeakRate: &result.Rate, Alert: &alert})
}
