package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"informativos-backend/service"

	"github.com/gin-gonic/gin"
)

// InformativoHandler handles HTTP requests for the dataset views
type InformativoHandler struct {
	informativoService *service.InformativoService
	statsService       *service.StatsService
}

// NewInformativoHandler creates a new informativo handler
func NewInformativoHandler(informativoService *service.InformativoService, statsService *service.StatsService) *InformativoHandler {
	return &InformativoHandler{
		informativoService: informativoService,
		statsService:       statsService,
	}
}

// ListInformativos handles GET /api/informativos
func (h *InformativoHandler) ListInformativos(c *gin.Context) {
	params, err := parseFilterParams(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	if c.Query("view") == "cards" {
		page := 1
		if raw := c.Query("page"); raw != "" {
			page, err = strconv.Atoi(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "INVALID_PAGE", "page must be a number")
				return
			}
		}

		result, err := h.informativoService.Cards(params, page)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
			return
		}
		respondOK(c, http.StatusOK, result)
		return
	}

	result, err := h.informativoService.List(params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, result)
}

// GetInformativo handles GET /api/informativos/:index
func (h *InformativoHandler) GetInformativo(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INDEX", "Invalid index format")
		return
	}

	rec, err := h.informativoService.Get(index)
	if errors.Is(err, service.ErrInformativoNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Informativo not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "GET_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, rec)
}

// GetFilterOptions handles GET /api/filters
func (h *InformativoHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.informativoService.Options()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "OPTIONS_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, opts)
}

// GetStats handles GET /api/stats
func (h *InformativoHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Stats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "STATS_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// parseFilterParams reads the dashboard filters from the query string.
// "Todos" or an empty value leaves a filter unset.
func parseFilterParams(c *gin.Context) (service.FilterParams, error) {
	params := service.FilterParams{
		RamoDireito:      c.Query("ramo"),
		ClasseProcesso:   c.Query("classe"),
		RepercussaoGeral: c.Query("repercussao"),
		Term:             strings.TrimSpace(c.Query("q")),
	}

	if raw := c.Query("informativo"); raw != "" && raw != service.AllSentinel {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("informativo must be a number, got %q", raw)
		}
		params.Informativo = &n
	}

	var err error
	if params.DateFrom, err = service.ParseFilterDate(c.Query("from")); err != nil {
		return params, fmt.Errorf("from: %w", err)
	}
	if params.DateTo, err = service.ParseFilterDate(c.Query("to")); err != nil {
		return params, fmt.Errorf("to: %w", err)
	}
	return params, nil
}
