package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/logic"
	"github.com/wayfind/res/internal/model"
)

func newRewardTestRouter(db *gorm.DB) *gin.Engine {
	h := NewRewardHandler(logic.NewRewardLogic(db))
	r := gin.New()
	r.POST("/api/v1/creators/:id/claim", h.Claim)
	r.GET("/api/v1/creators/:id/rewards/summary", h.GetRewardSummary)
	return r
}

func seedCreator(t *testing.T, db *gorm.DB, wallet string) *model.Creator {
	t.Helper()
	creator := &model.Creator{
		Wallet:        wallet,
		PayoutAddress: wallet,
		TotalEarned:   model.NewBigInt(0),
	}
	require.NoError(t, db.Create(creator).Error)
	return creator
}

func seedRewardLine(t *testing.T, db *gorm.DB, creatorID, epochNumber, amount int64) {
	t.Helper()
	line := &model.RewardLine{
		EpochId:       epochNumber,
		EpochNumber:   epochNumber,
		CreatorId:     creatorID,
		ViewsSnapshot: 100,
		MultiplierBps: model.DefaultMultiplierBps,
		BaseReward:    model.NewBigInt(amount),
		FinalReward:   model.NewBigInt(amount),
	}
	require.NoError(t, db.Create(line).Error)
}

func TestClaimEndpointSettlesRewards(t *testing.T) {
	db := openTestDB(t)
	r := newRewardTestRouter(db)

	creator := seedCreator(t, db, "0xcreator1")
	seedRewardLine(t, db, creator.Id, 1, 100)
	seedRewardLine(t, db, creator.Id, 2, 200)

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators/1/claim", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "300", data["claimedAmount"])
	assert.Equal(t, float64(2), data["lineCount"])
}

func TestClaimEndpointNoPending(t *testing.T) {
	db := openTestDB(t)
	r := newRewardTestRouter(db)

	seedCreator(t, db, "0xcreator1")

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators/1/claim", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, CodeNoPendingRewards, resp.Code)
}

func TestClaimEndpointUnknownCreator(t *testing.T) {
	db := openTestDB(t)
	r := newRewardTestRouter(db)

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators/99999/claim", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestRewardSummaryEndpoint(t *testing.T) {
	db := openTestDB(t)
	r := newRewardTestRouter(db)

	creator := seedCreator(t, db, "0xcreator1")
	seedRewardLine(t, db, creator.Id, 1, 150)

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/creators/1/rewards/summary", nil)
	require.Equal(t, http.StatusOK, code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "150", data["pendingAmount"])
	assert.Equal(t, float64(1), data["pendingLines"])
	assert.Equal(t, "0", data["claimedAmount"])
}
