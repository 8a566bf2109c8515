package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/bad-bets/internal/affiliate"
	"github.com/yourusername/bad-bets/internal/metrics"
	"github.com/yourusername/bad-bets/internal/models"
	"github.com/yourusername/bad-bets/internal/service"
)

// badBetDetail adds tracked links for the better alternatives.
type badBetDetail struct {
	models.BadBet
	ProviderLinks map[string]string `json:"provider_links,omitempty"`
}

// ListProviders returns the provider ranking.
func (h *Handler) ListProviders(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Providers())
}

// GetProvider returns one provider.
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Provider(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// ListBadBets returns the bad bets, optionally filtered by ?sport=.
func (h *Handler) ListBadBets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.BadBets(r.URL.Query().Get("sport")))
}

// GetBadBet returns one bad bet with affiliate links for its alternatives.
func (h *Handler) GetBadBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := h.catalog.BadBet(id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	detail := badBetDetail{BadBet: b}
	if h.links != nil {
		for _, alt := range b.Alternatives {
			if _, done := detail.ProviderLinks[alt.Provider]; done {
				continue
			}
			link, err := h.links.Link(alt.Provider, affiliate.Tracking{Campaign: "bad-bet-" + id})
			if err != nil {
				continue
			}
			if detail.ProviderLinks == nil {
				detail.ProviderLinks = make(map[string]string)
			}
			detail.ProviderLinks[alt.Provider] = link
		}
	}
	respondJSON(w, http.StatusOK, detail)
}

// ListSports returns "all" plus every sport with bad bets.
func (h *Handler) ListSports(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Sports())
}

// ListComparisons returns the rated worst-odds comparisons.
func (h *Handler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.comparisons.List(r.Context()))
}

// Subscribe stores an alert subscription.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req service.LeadRequest
	if err := decodeStrict(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	lead, err := h.leads.Subscribe(r.Context(), req)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, lead)
}

// Redirect sends the visitor to the provider's tracked affiliate link.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "provider")
	q := r.URL.Query()
	tracking := affiliate.Tracking{
		Source:   q.Get("source"),
		Campaign: q.Get("campaign"),
		Medium:   q.Get("medium"),
	}

	link, err := h.links.Link(providerID, tracking)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	metrics.RecordAffiliateRedirect(providerID)
	if h.audit != nil {
		h.audit.LogAffiliateRedirect(providerID, tracking.Source, tracking.Campaign, tracking.Medium, r.RemoteAddr)
	}
	http.Redirect(w, r, link, http.StatusFound)
}
