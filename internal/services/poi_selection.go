package services

import "tmap-route-service/internal/domain"

// Pick the authoritative POI from a provider's candidate list.
//
// The current policy trusts the provider's ranking and takes the first entry.
// Callers only depend on this function, so a ranked selection can replace it
// without touching the pipeline.
func selectBestMatch(candidates []domain.POI) (domain.POI, bool) {
	if len(candidates) == 0 {
		return domain.POI{}, false
	}
	return candidates[0], true
}
