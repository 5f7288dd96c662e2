package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func respondDetail(rnd *render.Render, w http.ResponseWriter, status int, detail string) {
	_ = rnd.JSON(w, status, map[string]string{"detail": detail})
}

func respondValidationErrors(rnd *render.Render, w http.ResponseWriter, errs validator.ValidationErrors) {
	_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
		"errors": helpers.FormatValidationErrors(errs),
	})
}

// decodeJSON parses the request body into dst, rejecting unknown garbage
// with a uniform 400.
func decodeJSON(rnd *render.Render, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondDetail(rnd, w, http.StatusBadRequest, "Malformed JSON body.")
		return false
	}
	return true
}

func decimalFromQuery(raw string) (*decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &price, nil
}
