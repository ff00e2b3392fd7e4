package handlers

import (
	"net/http"

	"devlink-backend/pkg/common"
	"devlink-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// respondValidationError writes one envelope entry per failing field
func respondValidationError(w http.ResponseWriter, err error) {
	if messages := utils.ValidationMessages(err); len(messages) > 0 {
		common.RespondErrors(w, http.StatusBadRequest, messages)
		return
	}
	common.RespondError(w, http.StatusBadRequest, err.Error())
}
