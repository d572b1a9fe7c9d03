package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/371bohdan/Record-Play/internal/app"
	"github.com/371bohdan/Record-Play/internal/domain"
)

func recordInput(r *http.Request) app.RecordInput {
	return app.RecordInput{
		NamePlace:     r.FormValue("name_place"),
		CoordinateX:   r.FormValue("coordinateX"),
		CoordinateY:   r.FormValue("coordinateY"),
		Year:          r.FormValue("year"),
		Season:        r.FormValue("season"),
		ChemicalIndex: r.FormValue("chemical_index"),
		Result:        r.FormValue("result"),
		Comment:       r.FormValue("comment"),
	}
}

func inputFromRecord(rec *domain.WaterRecord) app.RecordInput {
	return app.RecordInput{
		NamePlace:     rec.NamePlace,
		CoordinateX:   rec.CoordinateX,
		CoordinateY:   rec.CoordinateY,
		Year:          rec.Year,
		Season:        rec.Season,
		ChemicalIndex: rec.ChemicalIndex,
		Result:        strconv.FormatFloat(rec.Result, 'f', -1, 64),
		Comment:       rec.Comment,
	}
}

// handleWater serves the new-record form and accepts submissions. Both
// methods sit behind requireAuth.
func (s *Server) handleWater(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, http.StatusOK, "water", map[string]any{"Values": app.RecordInput{}})
	case http.MethodPost:
		in := recordInput(r)
		_, err := s.water.Create(r.Context(), in)
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			render(w, http.StatusOK, "water", map[string]any{
				"Error":  ve.Message,
				"Values": in,
			})
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/profile", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSetWater serves the edit form and accepts updates. Viewing a
// record is open; changing one requires a session.
func (s *Server) handleSetWater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := s.water.Get(r.Context(), id)
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		render(w, http.StatusOK, "set_water", map[string]any{
			"ID":     id,
			"Error":  popFlash(w, r),
			"Values": inputFromRecord(rec),
		})
	case http.MethodPost:
		if s.sessionUser(r) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		err := s.water.Update(r.Context(), id, recordInput(r))
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			// Send the caller back to the edit form with the error
			// carried over; the form repopulates from the store.
			setFlash(w, ve.Message)
			http.Redirect(w, r, "/set_water/"+strconv.FormatInt(id, 10), http.StatusFound)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/profile", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
