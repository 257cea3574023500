package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cetakin/printd/internal/discovery"
	"github.com/cetakin/printd/internal/registry"
)

type ProfilesResponse struct {
	Printers  []registry.PrinterProfile `json:"printers"`
	Papers    []registry.PaperProfile   `json:"papers"`
	Fonts     []registry.FontProfile    `json:"fonts"`
	Densities []registry.DensityProfile `json:"densities"`
}

type DiscoveryResponse struct {
	Connected  bool                  `json:"connected"`
	Candidates []discovery.Candidate `json:"candidates"`
}

type RegistryHandler struct {
	reg  *registry.Registry
	disc *discovery.Discovery
}

func NewRegistryHandler(reg *registry.Registry, disc *discovery.Discovery) *RegistryHandler {
	return &RegistryHandler{reg: reg, disc: disc}
}

func (h *RegistryHandler) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, ProfilesResponse{
		Printers:  h.reg.Printers(),
		Papers:    h.reg.Papers(),
		Fonts:     h.reg.Fonts(),
		Densities: h.reg.Densities(),
	})
}

func (h *RegistryHandler) ListPrinters(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Printers())
}

func (h *RegistryHandler) ListPapers(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Papers())
}

func (h *RegistryHandler) ListFonts(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Fonts())
}

func (h *RegistryHandler) ListDensities(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Densities())
}

// TestConnection enumerates recognized printers without opening a device or
// sending a single byte to it.
func (h *RegistryHandler) TestConnection(c *gin.Context) {
	candidates, err := h.disc.ListCandidates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "discovery_error",
			Message: err.Error(),
		})
		return
	}

	if candidates == nil {
		candidates = []discovery.Candidate{}
	}
	c.JSON(http.StatusOK, DiscoveryResponse{
		Connected:  len(candidates) > 0,
		Candidates: candidates,
	})
}
