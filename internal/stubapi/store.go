// Package stubapi is an in-memory stand-in for the risk backend.
//
// It implements every route riskdesk talks to over a mutex-guarded store.
// Metric values are canned; nothing here computes risk.
package stubapi

import (
	"errors"
	"sync"
	"time"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// LocalUserID owns every record created through the stub.
const LocalUserID = "local-user"

// Store holds backend records in memory.
type Store struct {
	mu         sync.RWMutex
	portfolios []domain.Portfolio
	assets     map[string]domain.Asset
	positions  map[string][]domain.Position
	risk       map[string][]domain.RiskCalculation
	scenarios  []domain.Scenario
	results    map[string][]domain.ScenarioResult
	limits     []domain.RiskLimit
	alerts     []domain.Alert
	now        func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		assets:    make(map[string]domain.Asset),
		positions: make(map[string][]domain.Position),
		risk:      make(map[string][]domain.RiskCalculation),
		results:   make(map[string][]domain.ScenarioResult),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func newID() string {
	return uuid.NewString()
}

// Portfolios returns all portfolios in creation order.
func (s *Store) Portfolios() []domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Portfolio{}, s.portfolios...)
}

// CreatePortfolio stores a new portfolio.
func (s *Store) CreatePortfolio(name, description, currency string) domain.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := domain.Portfolio{
		ID:          newID(),
		UserID:      LocalUserID,
		Name:        name,
		Description: description,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.portfolios = append(s.portfolios, p)
	return p
}

func (s *Store) hasPortfolio(id string) bool {
	for _, p := range s.portfolios {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddAsset registers an instrument.
func (s *Store) AddAsset(ticker, name, sector, assetType, currency string) domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := domain.Asset{
		ID:        newID(),
		Ticker:    ticker,
		Name:      name,
		Sector:    sector,
		AssetType: assetType,
		Currency:  currency,
		CreatedAt: s.now(),
	}
	s.assets[a.ID] = a
	return a
}

// AddPosition adds a holding of assetID to a portfolio.
func (s *Store) AddPosition(portfolioID, assetID string, quantity, weight, avgPrice float64) (domain.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPortfolio(portfolioID) {
		return domain.Position{}, ErrNotFound
	}
	asset, ok := s.assets[assetID]
	if !ok {
		return domain.Position{}, ErrNotFound
	}

	now := s.now()
	pos := domain.Position{
		ID:               newID(),
		PortfolioID:      portfolioID,
		AssetID:          assetID,
		Quantity:         quantity,
		Weight:           weight,
		AvgPurchasePrice: avgPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
		Asset:            &asset,
	}
	s.positions[portfolioID] = append(s.positions[portfolioID], pos)
	return pos, nil
}

// Positions returns the holdings of a portfolio.
func (s *Store) Positions(portfolioID string) ([]domain.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	return append([]domain.Position{}, s.positions[portfolioID]...), nil
}

// LatestRisk returns the newest calculation, or nil when none was run yet.
func (s *Store) LatestRisk(portfolioID string) (*domain.RiskCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	calcs := s.risk[portfolioID]
	if len(calcs) == 0 {
		return nil, nil
	}
	latest := calcs[len(calcs)-1]
	return &latest, nil
}

// RiskHistory returns up to limit calculations, newest first.
// A limit of zero or less returns all of them.
func (s *Store) RiskHistory(portfolioID string, limit int) ([]domain.RiskCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	calcs := s.risk[portfolioID]
	out := make([]domain.RiskCalculation, 0, len(calcs))
	for i := len(calcs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, calcs[i])
	}
	return out, nil
}

// CalculateRisk records a calculation for the given parameters.
func (s *Store) CalculateRisk(portfolioID string, horizonDays int, confidence float64) (domain.RiskCalculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPortfolio(portfolioID) {
		return domain.RiskCalculation{}, ErrNotFound
	}

	now := s.now()
	m := cannedMetrics(horizonDays, confidence)
	calc := domain.RiskCalculation{
		ID:              newID(),
		PortfolioID:     portfolioID,
		CalculationDate: now,
		HorizonDays:     horizonDays,
		ConfidenceLevel: confidence,
		VaRValue:        m.varValue,
		VaRPercentage:   m.varPct,
		CVaRValue:       m.cvarValue,
		CVaRPercentage:  m.cvarPct,
		Volatility:      m.volatility,
		SharpeRatio:     m.sharpe,
		MaxDrawdown:     m.drawdown,
		CreatedAt:       now,
	}
	s.risk[portfolioID] = append(s.risk[portfolioID], calc)
	return calc, nil
}

// Scenarios returns all scenario definitions in creation order.
func (s *Store) Scenarios() []domain.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Scenario{}, s.scenarios...)
}

// CreateScenario stores a scenario definition.
func (s *Store) CreateScenario(name, description string, scenarioType domain.ScenarioType, params domain.Parameters) domain.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params == nil {
		params = domain.Parameters{}
	}
	sc := domain.Scenario{
		ID:           newID(),
		UserID:       LocalUserID,
		Name:         name,
		Description:  description,
		ScenarioType: scenarioType,
		Parameters:   params,
		CreatedAt:    s.now(),
	}
	s.scenarios = append(s.scenarios, sc)
	return sc
}

// ScenarioResults returns the results of a portfolio, newest first.
func (s *Store) ScenarioResults(portfolioID string) ([]domain.ScenarioResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	results := s.results[portfolioID]
	out := make([]domain.ScenarioResult, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		out = append(out, results[i])
	}
	return out, nil
}

// RunScenario records a result of running scenarioID against a portfolio.
func (s *Store) RunScenario(portfolioID, scenarioID string) (domain.ScenarioResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPortfolio(portfolioID) {
		return domain.ScenarioResult{}, ErrNotFound
	}
	var sc *domain.Scenario
	for i := range s.scenarios {
		if s.scenarios[i].ID == scenarioID {
			copied := s.scenarios[i]
			sc = &copied
			break
		}
	}
	if sc == nil {
		return domain.ScenarioResult{}, ErrNotFound
	}

	impact := cannedImpact(sc.ScenarioType)
	res := domain.ScenarioResult{
		ID:                   newID(),
		PortfolioID:          portfolioID,
		ScenarioID:           scenarioID,
		PortfolioValueChange: impact.valueChange,
		VaRChange:            impact.varChange,
		VolatilityChange:     impact.volatilityChange,
		CalculatedAt:         s.now(),
		Scenario:             sc,
	}
	s.results[portfolioID] = append(s.results[portfolioID], res)
	return res, nil
}

// Limits returns the risk limits of a portfolio in creation order.
func (s *Store) Limits(portfolioID string) ([]domain.RiskLimit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	out := make([]domain.RiskLimit, 0)
	for _, l := range s.limits {
		if l.PortfolioID == portfolioID {
			out = append(out, l)
		}
	}
	return out, nil
}

// CreateLimit stores an active risk limit.
func (s *Store) CreateLimit(portfolioID string, limitType domain.LimitType, threshold float64) (domain.RiskLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPortfolio(portfolioID) {
		return domain.RiskLimit{}, ErrNotFound
	}
	now := s.now()
	l := domain.RiskLimit{
		ID:             newID(),
		PortfolioID:    portfolioID,
		LimitType:      limitType,
		ThresholdValue: threshold,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.limits = append(s.limits, l)
	return l, nil
}

// UpdateLimit applies a partial update. Nil fields are left unchanged.
func (s *Store) UpdateLimit(limitID string, isActive *bool, threshold *float64) (domain.RiskLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.limits {
		l := &s.limits[i]
		if l.ID != limitID {
			continue
		}
		if isActive != nil {
			l.IsActive = *isActive
		}
		if threshold != nil {
			l.ThresholdValue = *threshold
		}
		l.UpdatedAt = s.now()
		return *l, nil
	}
	return domain.RiskLimit{}, ErrNotFound
}

// AddAlert records an alert, optionally tied to a limit.
func (s *Store) AddAlert(portfolioID string, limitID *string, alertType, message string, severity domain.Severity) (domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPortfolio(portfolioID) {
		return domain.Alert{}, ErrNotFound
	}
	a := domain.Alert{
		ID:          newID(),
		PortfolioID: portfolioID,
		RiskLimitID: limitID,
		AlertType:   alertType,
		Message:     message,
		Severity:    severity,
		CreatedAt:   s.now(),
	}
	s.alerts = append(s.alerts, a)
	return a, nil
}

// Alerts returns the alerts of a portfolio, newest first.
func (s *Store) Alerts(portfolioID string, unreadOnly bool, limit int) ([]domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPortfolio(portfolioID) {
		return nil, ErrNotFound
	}
	out := make([]domain.Alert, 0)
	for i := len(s.alerts) - 1; i >= 0; i-- {
		a := s.alerts[i]
		if a.PortfolioID != portfolioID || (unreadOnly && a.IsRead) {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

// MarkAlertRead flags an alert as read.
func (s *Store) MarkAlertRead(alertID string, read bool) (domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == alertID {
			s.alerts[i].IsRead = read
			return s.alerts[i], nil
		}
	}
	return domain.Alert{}, ErrNotFound
}
