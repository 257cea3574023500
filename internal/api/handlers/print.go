package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cetakin/printd/internal/escpos"
	"github.com/cetakin/printd/internal/job"
	"github.com/cetakin/printd/internal/pipeline"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type AttemptResponse struct {
	Channel string `json:"channel"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

type PrintResponse struct {
	JobID     string            `json:"job_id"`
	Delivered bool              `json:"delivered"`
	Channel   string            `json:"channel,omitempty"`
	Attempts  []AttemptResponse `json:"attempts"`
}

type PreviewResponse struct {
	Text         string  `json:"text"`
	HTML         string  `json:"html"`
	PageHeightCM float64 `json:"page_height_cm"`
	EncodedSize  int     `json:"encoded_size"`
}

type PrintHandler struct {
	printer *pipeline.Printer
}

func NewPrintHandler(printer *pipeline.Printer) *PrintHandler {
	return &PrintHandler{printer: printer}
}

// SubmitPrint runs one job through the delivery pipeline. A job arriving
// while another is in flight is rejected with 409; it is never queued.
func (h *PrintHandler) SubmitPrint(c *gin.Context) {
	var j job.PrintJob
	if err := c.ShouldBindJSON(&j); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	outcome, err := h.printer.Print(c.Request.Context(), &j)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrBusy):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "printer_busy",
				Message: "Another print job is already in flight",
			})
		case errors.Is(err, job.ErrInvalidJob):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "print_error",
				Message: err.Error(),
			})
		}
		return
	}

	resp := PrintResponse{
		JobID:     outcome.JobID,
		Delivered: outcome.Delivered,
		Channel:   outcome.Channel,
		Attempts:  make([]AttemptResponse, 0, len(outcome.Attempts)),
	}
	for _, a := range outcome.Attempts {
		resp.Attempts = append(resp.Attempts, AttemptResponse{
			Channel: a.Channel,
			Outcome: a.Status.String(),
			Error:   a.Err,
		})
	}

	status := http.StatusOK
	if !outcome.Delivered {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// PreviewPrint generates the document and encoded buffer without touching
// any delivery channel.
func (h *PrintHandler) PreviewPrint(c *gin.Context) {
	var j job.PrintJob
	if err := c.ShouldBindJSON(&j); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	doc, raw, err := h.printer.Preview(&j)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrInvalidJob), errors.Is(err, escpos.ErrConfiguration):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "preview_error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Text:         doc.Text,
		HTML:         doc.HTML,
		PageHeightCM: doc.PageHeightCM,
		EncodedSize:  len(raw),
	})
}
