package handler

import (
	"net/http"
	"strconv"
	"time"

	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct{ svc *service.ReminderService }

func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// GET /api/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	f := service.ReminderFilter{
		Priority: c.Query("priority"),
		Tag:      c.Query("tag"),
		Today:    c.Query("today") == "true",
		Overdue:  c.Query("overdue") == "true",
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	if v := c.Query("completed"); v != "" {
		completed := v == "true"
		f.Completed = &completed
	}
	if v := c.Query("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			badRequest(c, "invalid from date")
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			badRequest(c, "invalid to date")
			return
		}
		f.To = &t
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	reminders, err := h.svc.List(c.Request.Context(), callerID(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	okCount(c, reminders, len(reminders))
}

// POST /api/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	var in model.ReminderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request")
		return
	}
	reminder, err := h.svc.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, reminder)
}

// GET /api/reminders/:id
func (h *ReminderHandler) Get(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	reminder, err := h.svc.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, reminder)
}

// PUT /api/reminders/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var in model.ReminderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request")
		return
	}
	reminder, err := h.svc.Update(c.Request.Context(), callerID(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, reminder)
}

// DELETE /api/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), callerID(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{})
}

// PUT /api/reminders/:id/complete
func (h *ReminderHandler) ToggleComplete(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	reminder, err := h.svc.ToggleComplete(c.Request.Context(), callerID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, reminder)
}

// PUT /api/reminders/:id/snooze
func (h *ReminderHandler) Snooze(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	var req model.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "please provide a snooze duration")
		return
	}
	reminder, err := h.svc.Snooze(c.Request.Context(), callerID(c), id, req.SnoozeDuration)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, reminder)
}

// GET /api/reminders/analytics
func (h *ReminderHandler) Analytics(c *gin.Context) {
	summary, err := h.svc.Analytics(c.Request.Context(), callerID(c), c.Query("period"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, summary)
}

func reminderID(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
