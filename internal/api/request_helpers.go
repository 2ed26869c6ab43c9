package api

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/recite/internal/domain"
)

// indexParam is the query parameter naming the sentence being practiced.
const indexParam = "idx"

// getIndexParam reads the sentence index from the query string. A missing
// index means the first sentence.
func getIndexParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get(indexParam)
	if raw == "" {
		return 0, nil
	}

	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(indexParam, "must be an integer", domain.ErrValidation)
	}
	if idx < 0 {
		return 0, domain.ErrIndexOutOfRange
	}
	return idx, nil
}

// practiceURL is the location of the practice screen for idx.
func practiceURL(idx int) string {
	return "/memorize?" + indexParam + "=" + strconv.Itoa(idx)
}

// isChecked reports whether a checkbox was submitted. Browsers omit
// unchecked boxes entirely, so presence is what counts.
func isChecked(r *http.Request, name string) bool {
	_, ok := r.PostForm[name]
	return ok
}
