package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rebalancer/internal/ai"
	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/logger"
	"rebalancer/internal/models"
	"rebalancer/internal/pagination"
)

// classificationService resolves and caches ticker classifications. The
// resolution order is: cached row, builtin map, AI classifier, fallback.
type classificationService struct {
	db         *gorm.DB
	classifier ai.Classifier
}

// NewClassificationService creates a new ClassificationServicer. classifier
// may be nil when no AI key is configured; unknown tickers then get the
// fallback classification.
func NewClassificationService(db *gorm.DB, classifier ai.Classifier) ClassificationServicer {
	return &classificationService{db: db, classifier: classifier}
}

// EnsureClassified makes sure every ticker in the map (ticker -> display
// name) has a cached classification, consulting the builtin map and the AI
// classifier for unseen tickers.
func (s *classificationService) EnsureClassified(ctx context.Context, tickers map[string]string) error {
	if len(tickers) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(tickers))
	for ticker := range tickers {
		symbols = append(symbols, strings.ToUpper(ticker))
	}
	sort.Strings(symbols)

	var existing []models.TickerClassification
	if err := s.db.Where("ticker IN ?", symbols).Find(&existing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Ticker] = true
	}

	var unknown []string
	for _, symbol := range symbols {
		if !known[symbol] {
			unknown = append(unknown, symbol)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	resolved := make(map[string]models.TickerClassification, len(unknown))
	var needAI []ai.Ticker
	for _, symbol := range unknown {
		if c, ok := builtinClassifications[symbol]; ok {
			resolved[symbol] = newRecord(symbol, tickers[symbol], c, models.SourceBuiltin)
			continue
		}
		needAI = append(needAI, ai.Ticker{Symbol: symbol, Name: tickers[symbol]})
	}

	if len(needAI) > 0 {
		aiResults := s.classify(ctx, needAI)
		for _, t := range needAI {
			if c, ok := aiResults[t.Symbol]; ok {
				resolved[t.Symbol] = newRecord(t.Symbol, t.Name, c, models.SourceAI)
			} else {
				resolved[t.Symbol] = newRecord(t.Symbol, t.Name, allocation.Fallback(), models.SourceFallback)
			}
		}
	}

	records := make([]models.TickerClassification, 0, len(resolved))
	for _, symbol := range unknown {
		records = append(records, resolved[symbol])
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoNothing: true,
	}).Create(&records).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// classify calls the AI classifier, swallowing failures so an upload never
// breaks on a flaky model call.
func (s *classificationService) classify(ctx context.Context, tickers []ai.Ticker) map[string]allocation.Classification {
	if s.classifier == nil {
		return nil
	}
	results, err := s.classifier.Classify(ctx, tickers)
	if err != nil {
		logger.Get().Warnw("AI classification failed, using fallback", "error", err, "tickers", len(tickers))
		return nil
	}
	return results
}

func newRecord(ticker, name string, c allocation.Classification, source string) models.TickerClassification {
	return models.TickerClassification{
		Ticker:            ticker,
		Name:              name,
		RegionBreakdown:   c.Region,
		CategoryBreakdown: c.Category,
		Source:            source,
		ClassifiedAt:      time.Now().UTC(),
	}
}

// ClassificationsFor loads the cached classifications for the given tickers.
// Tickers with no cached row are absent from the map.
func (s *classificationService) ClassificationsFor(tickers []string) (map[string]allocation.Classification, error) {
	if len(tickers) == 0 {
		return map[string]allocation.Classification{}, nil
	}

	upper := make([]string, len(tickers))
	for i, t := range tickers {
		upper[i] = strings.ToUpper(t)
	}

	var rows []models.TickerClassification
	if err := s.db.Where("ticker IN ?", upper).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[string]allocation.Classification, len(rows))
	for _, row := range rows {
		result[row.Ticker] = row.Breakdown()
	}
	return result, nil
}

// ListClassifications returns cached classifications ordered by ticker.
func (s *classificationService) ListClassifications(page pagination.PageRequest) (*pagination.PageResponse[models.TickerClassification], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.TickerClassification{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.TickerClassification
	if err := s.db.Order("ticker asc").Scopes(pagination.Paginate(page)).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(rows, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetClassification returns the cached classification for one ticker.
func (s *classificationService) GetClassification(ticker string) (*models.TickerClassification, error) {
	var row models.TickerClassification
	if err := s.db.Where("ticker = ?", strings.ToUpper(ticker)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClassificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// UpdateClassification overrides a ticker's breakdowns manually. Both
// distributions must use known labels and sum to 100.
func (s *classificationService) UpdateClassification(ticker string, region, category allocation.Distribution) (*models.TickerClassification, error) {
	c := allocation.Classification{Region: region, Category: category}
	if err := c.Validate(); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidClassification, err.Error())
	}

	row, err := s.GetClassification(ticker)
	if err != nil {
		if !errors.Is(err, apperrors.ErrClassificationNotFound) {
			return nil, err
		}
		record := newRecord(strings.ToUpper(ticker), "", c, models.SourceManual)
		if err := s.db.Create(&record).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &record, nil
	}

	row.RegionBreakdown = region
	row.CategoryBreakdown = category
	row.Source = models.SourceManual
	row.ClassifiedAt = time.Now().UTC()
	if err := s.db.Save(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// Reclassify drops the cached row and resolves the ticker again.
func (s *classificationService) Reclassify(ctx context.Context, ticker string) (*models.TickerClassification, error) {
	row, err := s.GetClassification(ticker)
	if err != nil {
		return nil, err
	}
	name := row.Name

	if err := s.db.Where("ticker = ?", row.Ticker).Delete(&models.TickerClassification{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.EnsureClassified(ctx, map[string]string{row.Ticker: name}); err != nil {
		return nil, err
	}
	return s.GetClassification(row.Ticker)
}

// ReclassifyAll re-resolves every cached ticker. Used by the nightly
// pipeline to refresh stale AI classifications. Returns the number of
// tickers processed.
func (s *classificationService) ReclassifyAll(ctx context.Context) (int, error) {
	var rows []models.TickerClassification
	if err := s.db.Where("source <> ?", models.SourceManual).Find(&rows).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tickers := make(map[string]string, len(rows))
	for _, row := range rows {
		tickers[row.Ticker] = row.Name
	}

	if err := s.db.Where("source <> ?", models.SourceManual).Delete(&models.TickerClassification{}).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.EnsureClassified(ctx, tickers); err != nil {
		return 0, err
	}
	return len(tickers), nil
}
