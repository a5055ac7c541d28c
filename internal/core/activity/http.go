// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shelfmark/internal/platform/request"
	"github.com/taibuivan/shelfmark/internal/platform/respond"
	"github.com/taibuivan/shelfmark/pkg/pagination"
)

// Handler exposes the reading log and streak over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /activities and /streak on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/activities", handler.listActivities)
	router.Post("/activities", handler.logActivity)
	router.Get("/streak", handler.getStreak)
}

func (handler *Handler) listActivities(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location := handler.service.Location()
	from, err := requestutil.OptionalDate(request, FieldFrom, location)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	to, err := requestutil.OptionalDate(request, FieldTo, location)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	activities, total, err := handler.service.ListActivities(request.Context(), userID, DateRange{From: from, To: to}, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, activities, pagination.NewMeta(page, total))
}

func (handler *Handler) logActivity(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input NewActivity
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	activity, err := handler.service.LogActivity(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, activity)
}

func (handler *Handler) getStreak(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	streak, err := handler.service.GetStreak(request.Context(), userID, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, streak)
}
