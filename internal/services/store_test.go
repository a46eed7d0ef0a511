package services

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/types"
)

// memoryStore is an in-memory db.DbInterface applying settlements atomically.
type memoryStore struct {
	mu            sync.Mutex
	processed     map[string]model.ProcessedCommandDocument
	pool          *model.PoolDocument
	endpoints     map[string]model.EndpointDocument
	positions     map[string]model.StakePositionDocument
	beneficiaries map[string]model.BeneficiaryDocument
	disbursements []model.DisbursementDocument
	timelocks     map[string]model.UnbondingTimeLockDocument
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		processed:     make(map[string]model.ProcessedCommandDocument),
		endpoints:     make(map[string]model.EndpointDocument),
		positions:     make(map[string]model.StakePositionDocument),
		beneficiaries: make(map[string]model.BeneficiaryDocument),
		timelocks:     make(map[string]model.UnbondingTimeLockDocument),
	}
}

func (m *memoryStore) Ping(ctx context.Context) error { return nil }

func (m *memoryStore) GetPool(ctx context.Context) (*model.PoolDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool == nil {
		return nil, &db.NotFoundError{Key: model.PoolDocumentID, Message: "pool is not initialized"}
	}
	doc := *m.pool
	return &doc, nil
}

func (m *memoryStore) GetEndpoint(ctx context.Context, id string) (*model.EndpointDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.endpoints[id]
	if !ok {
		return nil, &db.NotFoundError{Key: id, Message: "endpoint not found"}
	}
	return &doc, nil
}

func (m *memoryStore) GetStakePosition(ctx context.Context, endpoint, staker string) (*model.StakePositionDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := model.StakePositionID(endpoint, staker)
	doc, ok := m.positions[id]
	if !ok {
		return nil, &db.NotFoundError{Key: id, Message: "stake position not found"}
	}
	return &doc, nil
}

func (m *memoryStore) GetBeneficiary(ctx context.Context, authority string) (*model.BeneficiaryDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.beneficiaries[authority]
	if !ok {
		return nil, &db.NotFoundError{Key: authority, Message: "beneficiary not found"}
	}
	return &doc, nil
}

func (m *memoryStore) GetBeneficiaries(ctx context.Context, authorities []string) ([]*model.BeneficiaryDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []*model.BeneficiaryDocument
	for _, authority := range authorities {
		if doc, ok := m.beneficiaries[authority]; ok {
			docs = append(docs, &doc)
		}
	}
	return docs, nil
}

func (m *memoryStore) CommitSettlement(ctx context.Context, s *db.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.processed[s.Command.ID]; ok {
		return &db.DuplicateKeyError{Key: s.Command.ID, Message: "command already processed"}
	}
	m.processed[s.Command.ID] = s.Command

	if s.Pool != nil {
		doc := *s.Pool
		m.pool = &doc
	}
	if s.Endpoint != nil {
		m.endpoints[s.Endpoint.ID] = *s.Endpoint
	}
	if s.Position != nil {
		m.positions[s.Position.ID] = *s.Position
	}
	for _, b := range s.Beneficiaries {
		m.beneficiaries[b.Authority] = *b
	}
	for _, d := range s.Disbursements {
		m.disbursements = append(m.disbursements, *d)
	}
	if s.TimeLock != nil {
		m.timelocks[s.TimeLock.PositionID] = *s.TimeLock
	} else if s.ClearTimeLock && s.Position != nil {
		delete(m.timelocks, s.Position.ID)
	}
	return nil
}

func (m *memoryStore) FindPendingDisbursements(ctx context.Context, limit int64) ([]model.DisbursementDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []model.DisbursementDocument
	for _, d := range m.disbursements {
		if d.State == types.DisbursementPending && int64(len(docs)) < limit {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (m *memoryStore) MarkDisbursementPublished(ctx context.Context, id string, publishedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.disbursements {
		if d.ID == id && d.State == types.DisbursementPending {
			m.disbursements[i].State = types.DisbursementPublished
			m.disbursements[i].PublishedAt = publishedAt
			return nil
		}
	}
	return &db.NotFoundError{Key: id, Message: "pending disbursement not found"}
}

func (m *memoryStore) MarkDisbursementExecuted(ctx context.Context, id string, executedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.disbursements {
		if d.ID == id && slices.Contains(types.OutstandingDisbursementStates(), d.State) {
			m.disbursements[i].State = types.DisbursementExecuted
			m.disbursements[i].ExecutedAt = executedAt
			return nil
		}
	}
	return &db.NotFoundError{Key: id, Message: "outstanding disbursement not found"}
}

func (m *memoryStore) SumOutstandingCollections(ctx context.Context, principal, asset string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total uint64
	for _, d := range m.disbursements {
		if d.Kind == types.DirectiveCollectStake && d.Principal == principal && d.Asset == asset &&
			slices.Contains(types.OutstandingDisbursementStates(), d.State) {
			total += d.Amount
		}
	}
	return total, nil
}

func (m *memoryStore) CountPendingDisbursements(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, d := range m.disbursements {
		if d.State == types.DisbursementPending {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) FindReadyUnbondings(ctx context.Context, now int64, limit int64) ([]model.UnbondingTimeLockDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []model.UnbondingTimeLockDocument
	for _, tl := range m.timelocks {
		if tl.ReadyTime <= now {
			docs = append(docs, tl)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ReadyTime < docs[j].ReadyTime })
	if int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (m *memoryStore) DeleteUnbondingTimeLock(ctx context.Context, positionID string, readyTime int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tl, ok := m.timelocks[positionID]
	if !ok || tl.ReadyTime != readyTime {
		return &db.NotFoundError{Key: positionID, Message: "no unbonding timelock found with the given ready time"}
	}
	delete(m.timelocks, positionID)
	return nil
}

func (m *memoryStore) CalculatePositionStats(ctx context.Context) (*db.PositionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &db.PositionStats{}
	for _, p := range m.positions {
		switch p.State {
		case types.StateActive:
			stats.ActivePositions++
		case types.StatePendingWithdrawal:
			stats.PendingWithdrawals++
		}
		stats.TotalStake += p.TotalStake
		stats.TotalUnbonding += p.UnbondingAmount
	}
	return stats, nil
}

var _ db.DbInterface = (*memoryStore)(nil)
