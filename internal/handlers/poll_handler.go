package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type PollHandler struct {
	pollService contract.PollService
}

func NewPollHandler(pollService contract.PollService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
	}
}

// Routes builds the ops router.
func (h *PollHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Route("/polls", func(r chi.Router) {
		r.Get("/", h.ListPolls)
		r.Post("/publish", h.PublishPoll)
	})

	return r
}

func (h *PollHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type pollResponse struct {
	MessageID int64   `json:"message_id"`
	Monday    []int64 `json:"monday"`
	Tuesday   []int64 `json:"tuesday"`
	Wednesday []int64 `json:"wednesday"`
	Thursday  []int64 `json:"thursday"`
	Friday    []int64 `json:"friday"`
	Saturday  []int64 `json:"saturday"`
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollService.Polls(r.Context())
	if err != nil {
		logger.WithError(err).Error("Failed to list polls")
		http.Error(w, "failed to list polls", http.StatusInternalServerError)
		return
	}

	resp := make([]pollResponse, 0, len(polls))
	for _, p := range polls {
		resp = append(resp, pollResponse{
			MessageID: p.MessageID,
			Monday:    p.Days[0],
			Tuesday:   p.Days[1],
			Wednesday: p.Days[2],
			Thursday:  p.Days[3],
			Friday:    p.Days[4],
			Saturday:  p.Days[5],
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type publishResponse struct {
	MessageID int64 `json:"message_id"`
}

// PublishPoll posts a new poll right away, regardless of the weekday.
func (h *PollHandler) PublishPoll(w http.ResponseWriter, r *http.Request) {
	messageID, err := h.pollService.Publish(r.Context())
	if err != nil {
		logger.WithError(err).Error("Failed to publish poll")
		http.Error(w, "failed to publish poll", http.StatusInternalServerError)
		return
	}

	logger.WithField("message_id", messageID).Info("Poll published on request")
	writeJSON(w, http.StatusCreated, publishResponse{MessageID: messageID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}
