package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/httperr"
	"github.com/maximumcrm/salon-scheduler/internal/httpresp"
	"github.com/maximumcrm/salon-scheduler/internal/middleware"
	"github.com/maximumcrm/salon-scheduler/internal/timerange"
	ucSchedule "github.com/maximumcrm/salon-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	createUC     *ucSchedule.CreateBooking
	listUC       *ucSchedule.ListEvents
	rescheduleUC *ucSchedule.Reschedule
	deleteUC     *ucSchedule.DeleteAppointment
}

func NewScheduleHandler(
	createUC *ucSchedule.CreateBooking,
	listUC *ucSchedule.ListEvents,
	rescheduleUC *ucSchedule.Reschedule,
	deleteUC *ucSchedule.DeleteAppointment,
) *ScheduleHandler {
	return &ScheduleHandler{
		createUC:     createUC,
		listUC:       listUC,
		rescheduleUC: rescheduleUC,
		deleteUC:     deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint    `json:"client_id" binding:"required"`
	EmployeeID      uint    `json:"employee_id" binding:"required"`
	StartLocal      string  `json:"start_local" binding:"required"`
	DurationMinutes int     `json:"duration_minutes"`
	Title           *string `json:"title"`
	Notes           *string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	StartLocal      string `json:"start_local" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ScheduleHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные запроса.")
		return
	}

	if req.Title != nil && len([]rune(*req.Title)) > 200 {
		httperr.BadRequest(c, "title_too_long", "Тема: максимум 200 символов.")
		return
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > 500 {
		httperr.BadRequest(c, "notes_too_long", "Заметки: максимум 500 символов.")
		return
	}

	start, err := parseNaiveUTC(req.StartLocal)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Некорректная дата или время начала.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucSchedule.CreateBookingInput{
		ClientID:        req.ClientID,
		EmployeeID:      req.EmployeeID,
		StartUtc:        start,
		DurationMinutes: req.DurationMinutes,
		Title:           req.Title,
		Notes:           req.Notes,
		ActorID:         &actorID,
	})
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// EVENTS (calendar window)
// ======================================================

func (h *ScheduleHandler) Events(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_window", "Параметры start и end обязательны.")
		return
	}

	start, err := parseNaiveUTC(startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Некорректная граница окна.")
		return
	}
	end, err := parseNaiveUTC(endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_end", "Некорректная граница окна.")
		return
	}

	window, err := timerange.New(start, end)
	if err != nil {
		httperr.BadRequest(c, "invalid_range", "Начало окна должно быть раньше конца.")
		return
	}

	var employeeID *uint
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "Некорректный идентификатор сотрудника.")
			return
		}
		u := uint(id)
		employeeID = &u
	}

	events, err := h.listUC.Execute(c.Request.Context(), ucSchedule.ListEventsInput{
		Window:     window,
		EmployeeID: employeeID,
	})
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, events)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *ScheduleHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор записи.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректные данные запроса.")
		return
	}

	start, err := parseNaiveUTC(req.StartLocal)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Некорректная дата или время начала.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucSchedule.RescheduleInput{
		AppointmentID:   uint(id),
		StartUtc:        start,
		DurationMinutes: req.DurationMinutes,
		ActorID:         &actorID,
	})
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *ScheduleHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный идентификатор записи.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id), &actorID); err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// ERROR MAPPING
// ======================================================

// Every scheduling failure is typed; each type has its own status and
// user-visible message.
func (h *ScheduleHandler) writeScheduleError(c *gin.Context, err error) {
	var invDuration *domain.InvalidDurationError
	var invRange *timerange.InvalidRangeError
	var overlap *domain.OverlapError
	var constraint *domain.ConstraintViolationError
	var unavailable *domain.StoreUnavailableError

	switch {
	case errors.As(err, &invDuration):
		httperr.BadRequest(c, "invalid_duration", "Длительность должна быть больше нуля.")

	case errors.As(err, &invRange):
		httperr.BadRequest(c, "invalid_range", "Начало должно быть раньше окончания.")

	case errors.As(err, &overlap):
		httperr.Conflict(c, "slot_taken", fmt.Sprintf(
			"Выбранное время уже занято у этого сотрудника: %s — %s.",
			overlap.ConflictRange.Start.Format("02.01.2006 15:04"),
			overlap.ConflictRange.End.Format("15:04"),
		))

	case errors.As(err, &constraint):
		httperr.Unprocessable(c, "constraint_violation", fmt.Sprintf(
			"Связанная запись не найдена: %s.", constraint.Entity,
		))

	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "appointment_not_found", "Запись не найдена.")

	case errors.As(err, &unavailable):
		httperr.Unavailable(c, "store_unavailable", "Хранилище временно недоступно, повторите попытку.")

	default:
		httperr.Internal(c, "internal_error", "Внутренняя ошибка сервера.")
	}
}
