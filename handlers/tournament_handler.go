package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/openpair/roundrobin/middleware"
	"github.com/openpair/roundrobin/repositories"
	"github.com/openpair/roundrobin/services"
)

const maxLogoUploadBytes = 32 << 20 // 32MB

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// Create godoc
// @Summary Создание турнира с готовым расписанием по круговой системе
// @Tags tournaments
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Название, игроки через точку с запятой, система подсчёта очков"
// @Success 201 {object} models.Tournament
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid or missing authentication token")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBySlug godoc
// @Summary Турнир по слагу вместе с игроками и расписанием
// @Tags tournaments
// @Produce json
// @Param slug path string true "Слаг турнира"
// @Success 200 {object} models.Tournament
// @Router /tournaments/{slug} [get]
func (h *TournamentHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("tournament slug is required"))
		return
	}

	tournament, err := h.tournamentService.GetBySlug(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param organizer_id query int false "Фильтр по организатору"
// @Param limit query int false "Размер страницы (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Tournament
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListTournamentsFilter{
		Limit:  20,
		Offset: 0,
	}

	query := r.URL.Query()

	if raw := query.Get("organizer_id"); raw != "" {
		organizerID, err := strconv.Atoi(raw)
		if err != nil || organizerID <= 0 {
			badRequestResponse(w, r, errors.New("organizer_id must be a positive integer"))
			return
		}
		filter.OrganizerID = &organizerID
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 100 {
			badRequestResponse(w, r, errors.New("limit must be an integer between 1 and 100"))
			return
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			badRequestResponse(w, r, errors.New("offset must be a non-negative integer"))
			return
		}
		filter.Offset = offset
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournaments": tournaments,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удаление турнира (только организатор)
// @Tags tournaments
// @Param slug path string true "Слаг турнира"
// @Success 204
// @Security BearerAuth
// @Router /tournaments/{slug} [delete]
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid or missing authentication token")
		return
	}

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("tournament slug is required"))
		return
	}

	if err := h.tournamentService.Delete(r.Context(), slug, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadLogo godoc
// @Summary Загрузка логотипа турнира (только организатор)
// @Tags tournaments
// @Accept mpfd
// @Produce json
// @Param slug path string true "Слаг турнира"
// @Param logo formData file true "Файл логотипа (jpeg, png, gif, webp)"
// @Success 200 {object} models.Tournament
// @Security BearerAuth
// @Router /tournaments/{slug}/logo [put]
func (h *TournamentHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid or missing authentication token")
		return
	}

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("tournament slug is required"))
		return
	}

	if err := r.ParseMultipartForm(maxLogoUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("logo file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	tournament, err := h.tournamentService.UploadLogo(r.Context(), slug, userID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
