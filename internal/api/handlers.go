package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type PoolResponse struct {
	Asset                  string `json:"asset"`
	Authority              string `json:"authority"`
	FeeRecipient           string `json:"fee_recipient,omitempty"`
	StartTime              int64  `json:"start_time"`
	UnbondingDuration      uint64 `json:"unbonding_duration"`
	TotalStake             uint64 `json:"total_stake"`
	RewardPerShare         string `json:"reward_per_share"`
	LastRewardTime         int64  `json:"last_reward_time"`
	CurrentEmission        uint64 `json:"current_emission"`
	NextEmissionChangeTime int64  `json:"next_emission_change_time"`
}

type EndpointResponse struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	CreationTime int64  `json:"creation_time"`
	TotalStake   uint64 `json:"total_stake"`
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary,omitempty"`
}

type PositionResponse struct {
	Endpoint           string `json:"endpoint"`
	Staker             string `json:"staker"`
	State              string `json:"state"`
	TotalStake         uint64 `json:"total_stake"`
	CreationTime       int64  `json:"creation_time"`
	UnbondingAmount    uint64 `json:"unbonding_amount"`
	UnbondingReadyTime int64  `json:"unbonding_ready_time,omitempty"`
}

// BeneficiaryResponse previews what the beneficiary could claim now without
// settling anything.
type BeneficiaryResponse struct {
	Authority      string `json:"authority"`
	Staked         uint64 `json:"staked"`
	RewardDebt     uint64 `json:"reward_debt"`
	Holding        uint64 `json:"holding"`
	Pending        uint64 `json:"pending"`
	Harvestable    uint64 `json:"harvestable"`
	RewardPerShare string `json:"reward_per_share"`
	AsOf           int64  `json:"as_of"`
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, r, types.NewError(http.StatusServiceUnavailable, types.ServiceUnavailable,
			fmt.Errorf("database is unavailable: %w", err)))
		return
	}
	if s.queue != nil {
		if err := s.queue.Ping(); err != nil {
			writeError(w, r, types.NewError(http.StatusServiceUnavailable, types.ServiceUnavailable,
				fmt.Errorf("queue is unavailable: %w", err)))
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getPool(w http.ResponseWriter, r *http.Request) {
	doc, err := s.db.GetPool(r.Context())
	if err != nil {
		writeError(w, r, fromStoreError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, PoolResponse{
		Asset:                  doc.Asset,
		Authority:              doc.Authority,
		FeeRecipient:           doc.FeeRecipient,
		StartTime:              doc.StartTime,
		UnbondingDuration:      doc.UnbondingDuration,
		TotalStake:             doc.TotalStake,
		RewardPerShare:         doc.RewardPerShare,
		LastRewardTime:         doc.LastRewardTime,
		CurrentEmission:        doc.CurrentEmission,
		NextEmissionChangeTime: doc.NextEmissionChangeTime,
	})
}

func (s *Server) getEndpoint(w http.ResponseWriter, r *http.Request) {
	doc, err := s.db.GetEndpoint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, fromStoreError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, EndpointResponse{
		ID:           doc.ID,
		Owner:        doc.Owner,
		CreationTime: doc.CreationTime,
		TotalStake:   doc.TotalStake,
		Primary:      doc.Primary,
		Secondary:    doc.Secondary,
	})
}

func (s *Server) getPosition(w http.ResponseWriter, r *http.Request) {
	doc, err := s.db.GetStakePosition(r.Context(), chi.URLParam(r, "endpoint"), chi.URLParam(r, "staker"))
	if err != nil {
		writeError(w, r, fromStoreError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, positionResponse(doc))
}

func positionResponse(doc *model.StakePositionDocument) PositionResponse {
	return PositionResponse{
		Endpoint:           doc.Endpoint,
		Staker:             doc.Staker,
		State:              doc.State.String(),
		TotalStake:         doc.TotalStake,
		CreationTime:       doc.CreationTime,
		UnbondingAmount:    doc.UnbondingAmount,
		UnbondingReadyTime: doc.UnbondingReadyTime,
	}
}

func (s *Server) getBeneficiary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	beneficiaryDoc, err := s.db.GetBeneficiary(ctx, chi.URLParam(r, "authority"))
	if err != nil {
		writeError(w, r, fromStoreError(err))
		return
	}
	poolDoc, err := s.db.GetPool(ctx)
	if err != nil {
		writeError(w, r, fromStoreError(err))
		return
	}
	pool, err := poolDoc.ToPool()
	if err != nil {
		writeError(w, r, types.NewInternalServiceError(err))
		return
	}

	audit, err := ledger.AuditBeneficiary(beneficiaryDoc.ToBeneficiary(), *pool, s.now().Unix())
	if err != nil {
		writeError(w, r, types.NewInternalServiceError(err))
		return
	}

	writeJSON(w, r, http.StatusOK, BeneficiaryResponse{
		Authority:      audit.Authority,
		Staked:         audit.Staked,
		RewardDebt:     audit.RewardDebt,
		Holding:        audit.Holding,
		Pending:        audit.Pending,
		Harvestable:    audit.Harvestable,
		RewardPerShare: audit.RewardPerShare.Dec(),
		AsOf:           audit.Now,
	})
}

func fromStoreError(err error) *types.Error {
	var notFound *db.NotFoundError
	if errors.As(err, &notFound) {
		return types.NewNotFoundError(err)
	}
	return types.NewInternalServiceError(err)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, r, err.StatusCode, errorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   err.Error(),
	})
}
