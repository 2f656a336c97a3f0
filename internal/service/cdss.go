package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/cdss-core/internal/catalog"
	"github.com/cdss-core/internal/config"
	"github.com/cdss-core/internal/domain"
)

// CDSSService is the facade the host service talks to. It bundles the rule
// engine and the interaction checker behind one constructor, stamps each
// evaluation with an ID, and memoizes evaluation results: the engine is
// deterministic, so identical snapshot + catalog state always reproduces
// the same findings and the cached copy is as good as a fresh run.
type CDSSService struct {
	logger *logrus.Logger
	store  *catalog.Store
	cache  *lru.Cache[string, domain.EvaluationResult]
}

// NewCDSSService wires the facade from configuration and catalogs. A cache
// size of zero disables result caching.
func NewCDSSService(cfg *config.Config, logger *logrus.Logger, rules *catalog.RuleCatalog, drugs *catalog.DrugCatalog) (*CDSSService, error) {
	if len(cfg.Engine.DisabledRules) > 0 {
		rules = rules.WithDisabled(cfg.Engine.DisabledRules)
	}

	s := &CDSSService{
		logger: logger,
		store:  catalog.NewStore(rules, drugs),
	}

	if cfg.Engine.CacheSize > 0 {
		cache, err := lru.New[string, domain.EvaluationResult](cfg.Engine.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create evaluation cache: %w", err)
		}
		s.cache = cache
	}

	logger.WithFields(logrus.Fields{
		"rules":      rules.Len(),
		"cache_size": cfg.Engine.CacheSize,
	}).Info("CDSS service initialized")

	return s, nil
}

// Evaluate runs the full catalog against the snapshot.
func (s *CDSSService) Evaluate(snapshot *domain.PatientSnapshot) (*domain.EvaluationResult, error) {
	return s.evaluate(snapshot, "")
}

// EvaluateModule runs one clinical module (plus global rules) against the
// snapshot.
func (s *CDSSService) EvaluateModule(snapshot *domain.PatientSnapshot, module domain.Module) (*domain.EvaluationResult, error) {
	if !module.IsValid() {
		return nil, domain.NewValidationError("module",
			fmt.Sprintf("unknown module %q, allowed values: %v", module, domain.AllModules), module.String())
	}
	return s.evaluate(snapshot, module)
}

func (s *CDSSService) evaluate(snapshot *domain.PatientSnapshot, module domain.Module) (*domain.EvaluationResult, error) {
	evaluationID := uuid.NewString()
	start := time.Now()

	// One bundle load per evaluation: a concurrent catalog swap must not be
	// observed halfway through.
	bundle := s.store.Current()

	key, cacheable := s.cacheKey(snapshot, module, bundle)
	if cacheable && s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			result := cloneResult(cached)
			result.EvaluationID = evaluationID
			s.logger.WithFields(logrus.Fields{
				"evaluation_id": evaluationID,
				"module":        module.String(),
			}).Debug("Evaluation served from cache")
			return result, nil
		}
	}

	engine := NewRuleEngine(s.logger, bundle.Rules)
	var (
		result *domain.EvaluationResult
		err    error
	)
	if module == "" {
		result, err = engine.Evaluate(snapshot)
	} else {
		result, err = engine.EvaluateModule(snapshot, module)
	}
	if err != nil {
		return nil, err
	}

	result.EvaluationID = evaluationID

	if cacheable && s.cache != nil {
		// Store a copy: the result handed to the caller must not share
		// backing arrays with the cached entry.
		s.cache.Add(key, *cloneResult(*result))
	}

	s.logger.WithFields(logrus.Fields{
		"evaluation_id": evaluationID,
		"module":        module.String(),
		"findings":      len(result.Findings),
		"failed_rules":  len(result.FailedRuleIDs),
		"duration":      time.Since(start),
	}).Info("Completed CDSS evaluation")

	return result, nil
}

// cloneResult copies a cached evaluation result including its slices, so a
// caller mutating the returned findings cannot corrupt the cached entry for
// later hits.
func cloneResult(cached domain.EvaluationResult) *domain.EvaluationResult {
	result := cached
	result.Findings = make([]domain.Finding, len(cached.Findings))
	copy(result.Findings, cached.Findings)
	if cached.FailedRuleIDs != nil {
		result.FailedRuleIDs = make([]string, len(cached.FailedRuleIDs))
		copy(result.FailedRuleIDs, cached.FailedRuleIDs)
	}
	return &result
}

// cacheKey derives the memoization key from the snapshot content, the
// module filter, and both catalog fingerprints. A snapshot that cannot be
// marshaled is simply not cached.
func (s *CDSSService) cacheKey(snapshot *domain.PatientSnapshot, module domain.Module, bundle *catalog.Bundle) (string, bool) {
	if snapshot == nil {
		return "", false
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(append(payload, []byte("::"+module.String()+"::"+bundle.Rules.Version()+"::"+bundle.Drugs.Version())...))
	return hex.EncodeToString(sum[:]), true
}

// CheckInteractions runs the drug interaction checker against the current
// drug catalog.
func (s *CDSSService) CheckInteractions(req InteractionCheckRequest) (*domain.InteractionCheckResult, error) {
	checker := NewInteractionChecker(s.logger, s.store.Current().Drugs)
	return checker.CheckInteractions(req)
}

// DoseAdjustment resolves the renal dose recommendation for one drug.
func (s *CDSSService) DoseAdjustment(drugName string, egfr *float64, onDialysis bool) (*domain.DoseRecommendation, bool) {
	checker := NewInteractionChecker(s.logger, s.store.Current().Drugs)
	return checker.DoseAdjustment(drugName, egfr, onDialysis)
}

// DrugClasses lists the drug classes of the current catalog.
func (s *CDSSService) DrugClasses() []domain.ClassReference {
	return s.store.Current().Drugs.Classes()
}

// ListRules summarizes the current rule catalog, optionally by module.
func (s *CDSSService) ListRules(module domain.Module) ([]domain.RuleSummary, error) {
	return NewRuleEngine(s.logger, s.store.Current().Rules).ListRules(module)
}

// ActiveRuleCount counts active rules, optionally by module.
func (s *CDSSService) ActiveRuleCount(module domain.Module) (*domain.RuleCount, error) {
	return NewRuleEngine(s.logger, s.store.Current().Rules).ActiveRuleCount(module)
}

// ReloadCatalogs atomically swaps in new catalogs. In-flight evaluations
// keep the bundle they loaded; new evaluations see the new one. The result
// cache keys include the catalog versions, so stale entries can never be
// served against the new catalogs.
func (s *CDSSService) ReloadCatalogs(rules *catalog.RuleCatalog, drugs *catalog.DrugCatalog) {
	s.store.Swap(rules, drugs)
	s.logger.WithFields(logrus.Fields{
		"rules":         rules.Len(),
		"rules_version": rules.Version(),
		"drugs_version": drugs.Version(),
	}).Info("Catalogs reloaded")
}
