package handler

import (
	"net/http"
	"workout_api/internal/api/middleware"
	"workout_api/internal/app/service"
	"workout_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(ws *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: ws}
}

// RegisterRoutes expects the router to be guarded by middleware.Authenticator.
func (h *WorkoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listWorkouts)
	r.Post("/", h.createWorkout)
	r.Get("/{workoutID}", h.getWorkout)
	r.Patch("/{workoutID}", h.updateWorkout)
	r.Delete("/{workoutID}", h.deleteWorkout)
}

func (h *WorkoutHandler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	workouts, err := h.workoutService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) getWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(r.Context(), userID, chi.URLParam(r, "workoutID"))
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) createWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	req, err := service.DecodeWorkoutRequest(r.Body)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}

	workout, err := h.workoutService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, workout)
}

func (h *WorkoutHandler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	req, err := service.DecodeWorkoutRequest(r.Body)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}

	workout, err := h.workoutService.Update(r.Context(), userID, chi.URLParam(r, "workoutID"), req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(r.Context(), userID, chi.URLParam(r, "workoutID")); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return "", false
	}
	return userID, true
}
