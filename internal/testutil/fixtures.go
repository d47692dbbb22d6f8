package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"rebalancer/internal/allocation"
	"rebalancer/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSnapshot creates a snapshot for the given date and brokerage with
// no holdings.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, date time.Time, brokerage allocation.Brokerage) *models.Snapshot {
	t.Helper()

	snapshot := &models.Snapshot{
		SnapshotDate: date,
		Brokerage:    string(brokerage),
		Filename:     fmt.Sprintf("positions%d.csv", nextID()),
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snapshot
}

// CreateTestHolding creates a holding row inside the given snapshot and keeps
// the snapshot's rollup columns in sync.
func CreateTestHolding(t *testing.T, db *gorm.DB, snapshot *models.Snapshot, ticker string, quantity, price float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		SnapshotID: snapshot.ID,
		Ticker:     ticker,
		Name:       fmt.Sprintf("Test Security %d", nextID()),
		Quantity:   quantity,
		Price:      price,
		Value:      quantity * price,
		Brokerage:  snapshot.Brokerage,
		Account:    "Test Account",
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}

	snapshot.HoldingCount++
	snapshot.TotalValue += holding.Value
	if err := db.Save(snapshot).Error; err != nil {
		t.Fatalf("failed to update snapshot rollups: %v", err)
	}
	return holding
}

// CreateTestClassification caches a classification for the given ticker.
func CreateTestClassification(t *testing.T, db *gorm.DB, ticker string, region, category allocation.Distribution) *models.TickerClassification {
	t.Helper()

	classification := &models.TickerClassification{
		Ticker:            ticker,
		Name:              fmt.Sprintf("Test Security %d", nextID()),
		RegionBreakdown:   region,
		CategoryBreakdown: category,
		Source:            models.SourceManual,
		ClassifiedAt:      time.Now().UTC(),
	}
	if err := db.Create(classification).Error; err != nil {
		t.Fatalf("failed to create test classification: %v", err)
	}
	return classification
}

// CreateTestTargets saves target weights for a dimension. The weights should
// sum to 100.
func CreateTestTargets(t *testing.T, db *gorm.DB, dimension allocation.Dimension, targets map[string]float64) {
	t.Helper()

	for label, pct := range targets {
		target := &models.TargetAllocation{
			Dimension: string(dimension),
			Label:     label,
			TargetPct: pct,
		}
		if err := db.Create(target).Error; err != nil {
			t.Fatalf("failed to create test target: %v", err)
		}
	}
}
