package handler

import (
	"net/http"
	"strconv"

	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/gin-gonic/gin"
)

type BuddyHandler struct{ svc *service.BuddyService }

func NewBuddyHandler(svc *service.BuddyService) *BuddyHandler { return &BuddyHandler{svc: svc} }

// GET /api/buddies
func (h *BuddyHandler) List(c *gin.Context) {
	buddies, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if buddies == nil {
		buddies = []model.Buddy{}
	}
	okCount(c, buddies, len(buddies))
}

// GET /api/buddies/default
func (h *BuddyHandler) Default(c *gin.Context) {
	buddy, err := h.svc.GetDefault(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, buddy)
}

// GET /api/buddies/:id
func (h *BuddyHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	buddy, err := h.svc.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, buddy)
}

// POST /api/buddies
func (h *BuddyHandler) Create(c *gin.Context) {
	var in model.BuddyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request")
		return
	}
	buddy, err := h.svc.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, buddy)
}

// GET /api/buddies/:id/message?event=reminder&title=...
//
// Preview the persona's phrasing for an event; used by the client to show
// buddy messages without duplicating template logic.
func (h *BuddyHandler) Message(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return
	}
	buddy, err := h.svc.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	event := c.DefaultQuery("event", model.EventReminder)
	msg := buddy.MessageFor(event, c.Query("title"))
	if msg == "" {
		badRequest(c, "no templates for event "+event)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": msg})
}
