package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/logic"
	"github.com/wayfind/res/internal/model"
)

func newEpochTestRouter(db *gorm.DB) *gin.Engine {
	epochLogic := logic.NewEpochLogic(db, testTokenConfig())
	rewardLogic := logic.NewRewardLogic(db)
	h := NewEpochHandler(epochLogic, rewardLogic)
	r := gin.New()
	r.POST("/api/v1/epochs/run", h.RunEpoch)
	r.GET("/api/v1/epochs/:number", h.GetEpoch)
	return r
}

func seedBurnInWindow(t *testing.T, db *gorm.DB, txRef string, pool int64, at time.Time) {
	t.Helper()
	event := &model.BurnEvent{
		TxRef:          txRef,
		Wallet:         "0xburner",
		GrossAmount:    model.NewBigInt(pool * 4),
		BurnedAmount:   model.NewBigInt(pool * 3),
		PoolAmount:     model.NewBigInt(pool),
		CreditsGranted: model.NewBigInt(0),
		BurnedAt:       at,
	}
	require.NoError(t, db.Create(event).Error)
}

func TestRunEpochEndpoint(t *testing.T) {
	db := openTestDB(t)
	r := newEpochTestRouter(db)

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	creator := seedCreator(t, db, "0xcreator1")
	require.NoError(t, db.Model(creator).Update("weekly_views", 100).Error)
	seedBurnInWindow(t, db, "0xabc:0", 300, weekStart.Add(24*time.Hour))

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/epochs/run", RunEpochRequest{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	})

	require.Equal(t, http.StatusCreated, code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["epochNumber"])
	assert.Equal(t, "300", data["totalPooled"])
	assert.Equal(t, "300", data["totalReminted"])
	assert.Equal(t, float64(1), data["recipientCount"])
	assert.Equal(t, string(model.EpochStatusCompleted), data["status"])
}

func TestRunEpochEndpointOverlap(t *testing.T) {
	db := openTestDB(t)
	r := newEpochTestRouter(db)

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	req := RunEpochRequest{WeekStart: weekStart, WeekEnd: weekEnd}

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/epochs/run", req)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, resp.Success)

	code, resp = doJSON(t, r, http.MethodPost, "/api/v1/epochs/run", req)
	require.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeEpochOverlap, resp.Code)
}

func TestGetEpochEndpointNotFound(t *testing.T) {
	db := openTestDB(t)
	r := newEpochTestRouter(db)

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/epochs/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}
