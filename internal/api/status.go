package api

import (
	"net/http"
	"os"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/predict"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/store"
)

type statusAPI struct {
	store     *store.Store
	predictor *predict.Predictor
}

func (a *statusAPI) status(w http.ResponseWriter, r *http.Request) {
	count, err := a.store.CountAlerts()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	arts := a.predictor.Artifacts()
	info := map[string]interface{}{
		"features":       arts.Detector.Features,
		"detector_trees": len(arts.Detector.Trees),
		"rate_trees":     len(arts.RateModel.Trees),
		"alert_count":    count,
		"db_path":        a.store.DBPath(),
		"db_size":        int64(0),
	}

	// Main DB file
	if fi, err := os.Stat(a.store.DBPath()); err == nil {
		info["db_size"] = fi.Size()
	}

	// WAL file
	if fi, err := os.Stat(a.store.DBPath() + "-wal"); err == nil {
		info["wal_size"] = fi.Size()
	}

	writeJSON(w, http.StatusOK, info)
}
