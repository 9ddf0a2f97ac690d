package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/konditional"
	"github.com/konditional-dev/konditional/value"
)

// evaluateRequest is the request body for POST /v1/containers/{name}/evaluate.
type evaluateRequest struct {
	FlagName   string            `json:"flagName"`
	Platform   string            `json:"platform,omitempty"`
	Locale     string            `json:"locale,omitempty"`
	AppVersion string            `json:"appVersion,omitempty"`
	StableID   string            `json:"stableId,omitempty"`
	Axes       map[string]string `json:"axes,omitempty"`
}

// evaluateResponse mirrors flag.Result over the wire: Value reuses
// value.Value's own {"type":...,"value":...} JSON codec (spec §6.1), so
// this handler never hand-rolls a second encoding for the same type.
type evaluateResponse struct {
	Value         value.Value           `json:"value"`
	Decision      flag.DecisionKind     `json:"decision"`
	RuleIndex     *int                  `json:"ruleIndex,omitempty"`
	Bucket        *int                  `json:"bucket,omitempty"`
	RampUp        *float64              `json:"rampUp,omitempty"`
	SkippedRampUp *flag.SkippedByRampUp `json:"skippedRampUp,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.container(w, r)
	if !ok {
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidJSON, "invalid JSON: "+err.Error())
		return
	}
	if req.FlagName == "" {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "flagName is required")
		return
	}

	containerName := chi.URLParamFromCtx(r.Context(), "name")
	id, err := value.NewFlagID(containerName, req.FlagName)
	if err != nil {
		writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid flag name: "+err.Error())
		return
	}

	ctx := criteria.Context{PlatformTag: req.Platform, LocaleTag: req.Locale, Axes: req.Axes}
	if req.AppVersion != "" {
		v, err := value.ParseVersion(req.AppVersion)
		if err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid appVersion: "+err.Error())
			return
		}
		ctx.AppVersion = v
	}
	if req.StableID != "" {
		sid, err := value.StableIDOf(req.StableID)
		if err != nil {
			writeError(w, http.StatusBadRequest, errCodeBadRequest, "invalid stableId: "+err.Error())
			return
		}
		ctx.StableID = sid
	} else {
		ctx.StableIDFallback = true
	}

	result := konditional.EvaluateWithTrace(c, id, ctx)
	resp := evaluateResponse{Value: result.Value, Decision: result.Decision.Kind, SkippedRampUp: result.Decision.SkippedRampUp}
	if result.Decision.Kind == flag.DecisionRuleMatched {
		idx, bucket, ramp := result.Decision.RuleIndex, result.Decision.Bucket, result.Decision.RampUp
		resp.RuleIndex, resp.Bucket, resp.RampUp = &idx, &bucket, &ramp
	}
	writeJSON(w, http.StatusOK, resp)
}
