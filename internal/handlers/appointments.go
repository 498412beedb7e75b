package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"practice-scheduler-server/internal/middleware"
	"practice-scheduler-server/internal/models"
	"practice-scheduler-server/internal/scheduling"
	"practice-scheduler-server/internal/store"
	"practice-scheduler-server/internal/utils"
)

// AppointmentHandler handles the booking workflow: previewing a draft with
// its conflicts, committing it (single or as a recurring series) and the
// usual read/update operations on committed appointments.
type AppointmentHandler struct {
	DB      *gorm.DB
	Clients scheduling.ClientDirectory
	Slots   scheduling.BookedSlotSource
	Store   scheduling.AppointmentStore
	Logger  *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler backed by the
// database for all three scheduling collaborators.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	st := store.New(db)
	return &AppointmentHandler{
		DB:      db,
		Clients: st,
		Slots:   st,
		Store:   st,
		Logger:  utils.GetLogger(),
	}
}

// RecurrenceRequest is the recurrence portion of a booking request.
type RecurrenceRequest struct {
	Cadence         string `json:"cadence" binding:"required,oneof=weekly biweekly monthly"`
	OccurrenceCount int    `json:"occurrenceCount" binding:"required,min=1,max=52"`
}

// BookingRequest represents the booking form as submitted.
type BookingRequest struct {
	SessionKind            string             `json:"sessionKind" binding:"required,oneof=single recurring personal"`
	ClientID               string             `json:"clientId"`
	Title                  string             `json:"title"` // label for personal blocks
	Date                   string             `json:"date" binding:"required"`
	StartTime              string             `json:"startTime" binding:"required"`
	EndTime                string             `json:"endTime"`
	AppointmentKind        string             `json:"appointmentKind" binding:"omitempty,oneof=in_person remote"`
	VideoLink              string             `json:"videoLink"`
	Price                  string             `json:"price"`
	CreatesFinancialRecord *bool              `json:"createsFinancialRecord"`
	Recurrence             *RecurrenceRequest `json:"recurrence"`
	// Confirmed approves the booking despite reported conflicts.
	Confirmed bool `json:"confirmed"`
}

// BookingPreview is the confirmation payload presented to the user before
// commit: the full occurrence list plus every detected conflict. Conflicts
// are advisory; resubmitting with confirmed=true proceeds anyway.
type BookingPreview struct {
	Occurrences          []time.Time                     `json:"occurrences"`
	Conflicts            []scheduling.RecurrenceConflict `json:"conflicts"`
	ConflictWarning      string                          `json:"conflictWarning,omitempty"`
	RequiresConfirmation bool                            `json:"requiresConfirmation"`
}

// builtForm is a draft form replayed from a booking request, together with
// the booked-slot snapshot it was checked against and the resolved booking
// title.
type builtForm struct {
	form  scheduling.FormState
	slots []scheduling.BookedSlot
	title string
}

// buildForm replays the request's fields through the form state reducer so
// all derived-field rules apply, and resolves the booking title. Returns
// false if a response has already been written.
func (h *AppointmentHandler) buildForm(c *gin.Context, req *BookingRequest, practitionerID string) (builtForm, bool) {
	var zero builtForm

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD: "+req.Date)
		return zero, false
	}

	slots, err := h.Slots.ListBookedSlots(c.Request.Context(), practitionerID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load booked slots: "+err.Error())
		return zero, false
	}

	sessionKind, err := scheduling.ParseSessionKind(req.SessionKind)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return zero, false
	}

	form := scheduling.NewFormState(date, slots)
	form = form.Apply(scheduling.SetSessionKind{Kind: sessionKind})

	startTime, err := scheduling.ParseTimeOfDay(req.StartTime)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return zero, false
	}
	form = form.Apply(scheduling.SetStartTime{Time: startTime})

	if req.EndTime != "" {
		endTime, err := scheduling.ParseTimeOfDay(req.EndTime)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return zero, false
		}
		form = form.Apply(scheduling.SetEndTime{Time: endTime})
	}

	if req.AppointmentKind != "" {
		kind, err := scheduling.ParseAppointmentKind(req.AppointmentKind)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return zero, false
		}
		form = form.Apply(scheduling.SetAppointmentKind{Kind: kind})
	}

	title := req.Title
	if sessionKind == scheduling.SessionPersonal {
		if title == "" {
			title = "Personal time"
		}
	} else if req.ClientID != "" {
		client, err := h.Clients.GetClient(c.Request.Context(), req.ClientID)
		if err != nil {
			utils.InternalServerError(c, "Failed to look up client: "+err.Error())
			return zero, false
		}
		if client == nil {
			utils.NotFound(c, "Client not found")
			return zero, false
		}
		form = form.Apply(scheduling.SelectClient{Client: *client})
		if title == "" {
			title = client.Name
		}
	}

	if req.CreatesFinancialRecord != nil && sessionKind != scheduling.SessionPersonal {
		form = form.Apply(scheduling.SetCreatesFinancialRecord{Enabled: *req.CreatesFinancialRecord})
	}
	if req.Price != "" {
		form = form.Apply(scheduling.SetPrice{Price: req.Price})
	}
	if req.VideoLink != "" {
		form = form.Apply(scheduling.SetVideoLink{Link: req.VideoLink})
	}
	if req.Recurrence != nil {
		form = form.Apply(scheduling.SetRecurrence{Recurrence: scheduling.Recurrence{
			Cadence:         scheduling.Cadence(req.Recurrence.Cadence),
			OccurrenceCount: req.Recurrence.OccurrenceCount,
		}})
	}

	return builtForm{form: form, slots: slots, title: title}, true
}

// previewForm computes the confirmation payload for a validated form:
// recurring drafts get the full series resolution, single drafts get the
// live single-slot warning.
func (h *AppointmentHandler) previewForm(c *gin.Context, built builtForm) (BookingPreview, bool) {
	draft := built.form.Draft

	if draft.SessionKind == scheduling.SessionRecurring {
		resolution, err := scheduling.Resolve(draft, built.slots)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return BookingPreview{}, false
		}
		return BookingPreview{
			Occurrences:          resolution.Occurrences,
			Conflicts:            resolution.Conflicts,
			RequiresConfirmation: len(resolution.Conflicts) > 0,
		}, true
	}

	return BookingPreview{
		Occurrences:          []time.Time{draft.Date},
		ConflictWarning:      built.form.ConflictWarning,
		RequiresConfirmation: built.form.ConflictWarning != "",
	}, true
}

// PreviewBooking validates a draft and reports its occurrences and conflicts
// without writing anything.
func (h *AppointmentHandler) PreviewBooking(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req BookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	built, ok := h.buildForm(c, &req, practitionerID)
	if !ok {
		return
	}

	if err := built.form.Validate(); err != nil {
		utils.UnprocessableEntity(c, err.Error())
		return
	}

	preview, ok := h.previewForm(c, built)
	if !ok {
		return
	}

	utils.Success(c, "Booking preview computed", preview)
}

// CreateBooking commits a draft. If the draft has unconfirmed conflicts the
// handler responds with the confirmation payload instead of writing;
// resubmitting with confirmed=true books despite the conflicts
// (double-booking is allowed once the practitioner approves it).
func (h *AppointmentHandler) CreateBooking(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req BookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	built, ok := h.buildForm(c, &req, practitionerID)
	if !ok {
		return
	}

	if err := built.form.Validate(); err != nil {
		utils.UnprocessableEntity(c, err.Error())
		return
	}

	preview, ok := h.previewForm(c, built)
	if !ok {
		return
	}

	if preview.RequiresConfirmation && !req.Confirmed {
		utils.Conflict(c, "Booking overlaps existing appointments and requires confirmation", preview)
		return
	}

	appointments, err := scheduling.Materialize(built.form.Draft, preview.Occurrences, practitionerID, built.title)
	if err != nil {
		utils.UnprocessableEntity(c, err.Error())
		return
	}

	if err := h.Store.InsertBatch(c.Request.Context(), appointments); err != nil {
		// The draft is preserved client-side; the whole batch failed.
		h.Logger.Error("appointment batch insert failed",
			zap.String("practitionerId", practitionerID),
			zap.Int("batchSize", len(appointments)),
			zap.Error(err))
		utils.InternalServerError(c, err.Error())
		return
	}

	h.Logger.Info("appointments booked",
		zap.String("practitionerId", practitionerID),
		zap.String("sessionKind", string(built.form.Draft.SessionKind)),
		zap.Int("occurrences", len(appointments)),
		zap.Int("confirmedConflicts", len(preview.Conflicts)))

	utils.Created(c, "Appointments booked successfully", appointments)
}

// GetAppointments handles listing the practitioner's appointments, optionally
// filtered by date range, client or status.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Preload("Client").
		Where("practitioner_id = ?", practitionerID).
		Order("start_time asc")

	if from := c.Query("from"); from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.BadRequest(c, "Invalid 'from' date: "+from)
			return
		}
		query = query.Where("start_time >= ?", date)
	}
	if to := c.Query("to"); to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.BadRequest(c, "Invalid 'to' date: "+to)
			return
		}
		query = query.Where("start_time < ?", date.AddDate(0, 0, 1))
	}
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Client").First(&appointment, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=scheduled completed cancelled no_show"`
	Notes  string                   `json:"notes"` // Optional notes for the status change
}

// UpdateAppointmentStatus handles marking an appointment completed,
// cancelled or a no-show.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// CancelAppointment cancels one appointment, or with ?scope=series every
// still-scheduled occurrence of its recurrence group from this one onward.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if c.Query("scope") == "series" && appointment.RecurrenceGroupID != nil {
		result := h.DB.Model(&models.Appointment{}).
			Where("recurrence_group_id = ? AND practitioner_id = ? AND start_time >= ? AND status = ?",
				*appointment.RecurrenceGroupID, practitionerID, appointment.StartTime, models.StatusScheduled).
			Update("status", models.StatusCancelled)
		if result.Error != nil {
			utils.InternalServerError(c, "Failed to cancel series: "+result.Error.Error())
			return
		}
		h.Logger.Info("recurring series cancelled",
			zap.String("practitionerId", practitionerID),
			zap.String("recurrenceGroupId", *appointment.RecurrenceGroupID),
			zap.Int64("cancelled", result.RowsAffected))
		utils.Success(c, "Remaining appointments in the series cancelled", gin.H{"cancelled": result.RowsAffected})
		return
	}

	appointment.Status = models.StatusCancelled
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}
