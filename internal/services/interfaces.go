package services

import (
	"context"
	"time"

	"rebalancer/internal/allocation"
	"rebalancer/internal/models"
	"rebalancer/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// SnapshotServicer defines the contract for snapshot ingestion and lookup.
type SnapshotServicer interface {
	ImportCSV(ctx context.Context, date time.Time, brokerage allocation.Brokerage, filename, content string) (*models.Snapshot, error)
	ListSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error)
	GetSnapshot(id string) (*models.Snapshot, error)
	DeleteSnapshot(id string) error
	ClearAll() error

	// PositionsFor resolves a date query ("latest" or YYYY-MM-DD) to the
	// normalized positions of the matching snapshots.
	PositionsFor(dateQuery string) ([]allocation.Position, time.Time, error)
	// Dates returns the distinct snapshot dates, newest first.
	Dates() ([]time.Time, error)
}

// ClassificationServicer defines the contract for the ticker classification
// cache and its resolution chain.
type ClassificationServicer interface {
	// EnsureClassified resolves classifications for every ticker, consulting
	// the cache, the builtin map, and finally the AI classifier.
	EnsureClassified(ctx context.Context, tickers map[string]string) error
	ClassificationsFor(tickers []string) (map[string]allocation.Classification, error)
	ListClassifications(page pagination.PageRequest) (*pagination.PageResponse[models.TickerClassification], error)
	GetClassification(ticker string) (*models.TickerClassification, error)
	UpdateClassification(ticker string, region, category allocation.Distribution) (*models.TickerClassification, error)
	Reclassify(ctx context.Context, ticker string) (*models.TickerClassification, error)
	ReclassifyAll(ctx context.Context) (int, error)
}

// TargetServicer defines the contract for target allocation management.
type TargetServicer interface {
	SaveTargets(dimension allocation.Dimension, targets map[string]float64) error
	GetTargets(dimension allocation.Dimension) (map[string]float64, error)
	GetAllTargets() ([]models.TargetAllocation, error)
}

// BreakdownView is the API shape of a portfolio breakdown.
type BreakdownView struct {
	SnapshotDate time.Time            `json:"snapshot_date"`
	Breakdown    allocation.Breakdown `json:"breakdown"`
	EquityOnly   bool                 `json:"equity_only"`
}

// RebalanceView is the API shape of a rebalance run across both dimensions.
type RebalanceView struct {
	SnapshotDate time.Time        `json:"snapshot_date"`
	Region       *allocation.Plan `json:"region,omitempty"`
	Category     *allocation.Plan `json:"category,omitempty"`
}

// LiveView is the API shape of the live-price overlay.
type LiveView struct {
	SnapshotDate time.Time                 `json:"snapshot_date"`
	Positions    []allocation.LivePosition `json:"positions"`
	Summary      allocation.LiveSummary    `json:"summary"`
	Breakdown    allocation.Breakdown      `json:"breakdown"`
}

// PortfolioServicer defines the contract for the read-side portfolio views.
type PortfolioServicer interface {
	GetBreakdown(ctx context.Context, dateQuery string, equityOnly bool) (*BreakdownView, error)
	GetRebalance(ctx context.Context, dateQuery string, dimension *allocation.Dimension) (*RebalanceView, error)
	GetLiveView(ctx context.Context, dateQuery string) (*LiveView, error)
}

// AnalysisServicer defines the contract for the AI narrative analysis.
type AnalysisServicer interface {
	GenerateAnalysis(ctx context.Context, dateQuery string) (*models.PortfolioAnalysis, error)
	GetAnalysis(dateQuery string) (*models.PortfolioAnalysis, error)
}
