package httpapi

import (
	"net/http"

	"github.com/riskibarqy/footmate/internal/domain/ability"
	"github.com/riskibarqy/footmate/internal/domain/location"
)

type stateRequest struct {
	CountryID string `json:"country_id" validate:"omitempty"`
	Name      string `json:"name" validate:"required,max=100"`
}

type cityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type countryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortName  string `json:"sortname"`
	PhoneCode string `json:"phonecode"`
}

type stateDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CountryID string `json:"country_id"`
}

type cityDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	StateID string `json:"state_id"`
}

type statePageDTO struct {
	Total   int        `json:"total"`
	Records []stateDTO `json:"records"`
}

type countryStatsDTO struct {
	Country   string `json:"country"`
	NoOfState int    `json:"no_of_state"`
	NoOfCity  int    `json:"no_of_city"`
}

type attributeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type abilityDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Attributes []attributeDTO `json:"attributes"`
}

type positionMasterDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	AbilityIDs   []string `json:"abilities"`
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListCountries")
	defer span.End()

	items, err := h.locations.Countries(ctx)
	if err != nil {
		h.fail(ctx, w, "list countries failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, countryToDTO))
}

func (h *Handler) GetCountryByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetCountryByID")
	defer span.End()

	id := r.PathValue("id")
	item, err := h.locations.CountryByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get country failed", err, "country_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, countryToDTO(item))
}

func (h *Handler) GetCountryByCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetCountryByCode")
	defer span.End()

	code := r.PathValue("code")
	item, err := h.locations.CountryByCode(ctx, code)
	if err != nil {
		h.fail(ctx, w, "get country by code failed", err, "code", code)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, countryToDTO(item))
}

func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListStates")
	defer span.End()

	items, err := h.locations.States(ctx)
	if err != nil {
		h.fail(ctx, w, "list states failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, stateToDTO))
}

// StateList pages the states of one country, the default one when
// country_id is absent.
func (h *Handler) StateList(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "StateList")
	defer span.End()

	params, err := pagingFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	countryID := r.URL.Query().Get("country_id")
	page, err := h.locations.StateList(ctx, countryID, params)
	if err != nil {
		h.fail(ctx, w, "page states failed", err, "country_id", countryID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, statePageDTO{
		Total:   page.Total,
		Records: mapSlice(page.Records, stateToDTO),
	})
}

func (h *Handler) GetStateByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetStateByID")
	defer span.End()

	id := r.PathValue("id")
	item, err := h.locations.StateByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get state failed", err, "state_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, stateToDTO(item))
}

func (h *Handler) ListStatesByCountry(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListStatesByCountry")
	defer span.End()

	countryID := r.PathValue("countryId")
	items, err := h.locations.StatesByCountry(ctx, countryID)
	if err != nil {
		h.fail(ctx, w, "list states by country failed", err, "country_id", countryID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, stateToDTO))
}

func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListCities")
	defer span.End()

	items, err := h.locations.Cities(ctx)
	if err != nil {
		h.fail(ctx, w, "list cities failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, cityToDTO))
}

func (h *Handler) GetCityByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetCityByID")
	defer span.End()

	id := r.PathValue("id")
	item, err := h.locations.CityByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get city failed", err, "city_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, cityToDTO(item))
}

func (h *Handler) ListCitiesByState(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListCitiesByState")
	defer span.End()

	stateID := r.PathValue("stateId")
	items, err := h.locations.CitiesByState(ctx, stateID)
	if err != nil {
		h.fail(ctx, w, "list cities by state failed", err, "state_id", stateID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, cityToDTO))
}

func (h *Handler) LocationStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "LocationStats")
	defer span.End()

	items, err := h.locations.Stats(ctx)
	if err != nil {
		h.fail(ctx, w, "location stats failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, func(s location.CountryStats) countryStatsDTO {
		return countryStatsDTO{Country: s.Country, NoOfState: s.NoOfState, NoOfCity: s.NoOfCity}
	}))
}

func (h *Handler) ListAbilities(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListAbilities")
	defer span.End()

	items, err := h.locations.Abilities(ctx)
	if err != nil {
		h.fail(ctx, w, "list abilities failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, func(a ability.Ability) abilityDTO {
		return abilityDTO{
			ID:   a.ID,
			Name: a.Name,
			Attributes: mapSlice(a.Attributes, func(attr ability.Attribute) attributeDTO {
				return attributeDTO{ID: attr.ID, Name: attr.Name}
			}),
		}
	}))
}

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListPositions")
	defer span.End()

	items, err := h.locations.Positions(ctx)
	if err != nil {
		h.fail(ctx, w, "list positions failed", err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, func(p ability.Position) positionMasterDTO {
		ids := p.AbilityIDs
		if ids == nil {
			ids = []string{}
		}
		return positionMasterDTO{ID: p.ID, Name: p.Name, Abbreviation: p.Abbreviation, AbilityIDs: ids}
	}))
}

func (h *Handler) AddState(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "AddState")
	defer span.End()

	var req stateRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.locations.AddState(ctx, req.CountryID, req.Name)
	if err != nil {
		h.fail(ctx, w, "add state failed", err, "country_id", req.CountryID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, stateToDTO(item))
}

func (h *Handler) EditState(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "EditState")
	defer span.End()

	id := r.PathValue("id")
	var req stateRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.locations.EditState(ctx, id, req.Name)
	if err != nil {
		h.fail(ctx, w, "edit state failed", err, "state_id", id)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, stateToDTO(item))
}

func (h *Handler) AddCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "AddCity")
	defer span.End()

	stateID := r.PathValue("state_id")
	var req cityRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.locations.AddCity(ctx, stateID, req.Name)
	if err != nil {
		h.fail(ctx, w, "add city failed", err, "state_id", stateID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, cityToDTO(item))
}

func countryToDTO(c location.Country) countryDTO {
	return countryDTO{ID: c.ID, Name: c.Name, SortName: c.SortName, PhoneCode: c.PhoneCode}
}

func stateToDTO(s location.State) stateDTO {
	return stateDTO{ID: s.ID, Name: s.Name, Slug: s.Slug, CountryID: s.CountryID}
}

func cityToDTO(c location.City) cityDTO {
	return cityDTO{ID: c.ID, Name: c.Name, Slug: c.Slug, StateID: c.StateID}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
