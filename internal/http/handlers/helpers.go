package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"tpcell/internal/common"
)

func decodeJSON(r *http.Request, dest any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "bearer token not provided or invalid", nil)
}
