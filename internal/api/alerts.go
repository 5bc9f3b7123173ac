package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/model"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/store"
)

type alertsAPI struct {
	store *store.Store
}

func (a *alertsAPI) list(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.store.ListAlerts()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (a *alertsAPI) clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := a.store.ClearAlerts()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	log.Info().Int64("deleted", deleted).Msg("alert history cleared")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "cleared",
		"deleted": deleted,
	})
}
