package api

import (
	"net/http"
	"time"

	"skycast/internal/common"
	"skycast/internal/constants"
	"skycast/internal/db/repositories"
	"skycast/internal/logging"
)

// HistoryHandler handles GET /history, returning every persisted query in
// insertion order.
func HistoryHandler(historyRepo repositories.HistoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		records, err := historyRepo.ListAll(r.Context())
		if err != nil {
			logging.Error("Failed to read history", "error", err.Error())
			common.RespondError(w, initTime, constants.MsgHistoryFailure, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched history", records)
	}
}
