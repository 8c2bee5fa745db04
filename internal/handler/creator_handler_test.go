package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/logic"
)

func newCreatorTestRouter(db *gorm.DB) *gin.Engine {
	reputationLogic := logic.NewReputationLogic(db, config.ReputationConfig{
		AccessibilityBaseline: 70,
		NoBounceBaseline:      70,
	})
	h := NewCreatorHandler(logic.NewCreatorLogic(db), reputationLogic)
	r := gin.New()
	r.POST("/api/v1/creators", h.RegisterCreator)
	r.GET("/api/v1/creators/:id", h.GetCreator)
	r.POST("/api/v1/creators/:id/reputation/recalculate", h.RecalculateReputation)
	return r
}

func TestRegisterCreatorEndpoint(t *testing.T) {
	db := openTestDB(t)
	r := newCreatorTestRouter(db)

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators", RegisterCreatorRequest{
		Wallet: "0xcreator1",
	})

	require.Equal(t, http.StatusCreated, code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "0xcreator1", data["wallet"])
	// 未指定收款地址时默认使用钱包地址
	assert.Equal(t, "0xcreator1", data["payoutAddress"])
	assert.Equal(t, "0", data["totalEarned"])
}

func TestRegisterCreatorEndpointDuplicateWallet(t *testing.T) {
	db := openTestDB(t)
	r := newCreatorTestRouter(db)

	req := RegisterCreatorRequest{Wallet: "0xcreator1"}

	code, _ := doJSON(t, r, http.MethodPost, "/api/v1/creators", req)
	require.Equal(t, http.StatusCreated, code)

	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators", req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)
}

func TestGetCreatorEndpointNotFound(t *testing.T) {
	db := openTestDB(t)
	r := newCreatorTestRouter(db)

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/creators/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
}

func TestRecalculateReputationEndpointNoContent(t *testing.T) {
	db := openTestDB(t)
	r := newCreatorTestRouter(db)

	code, _ := doJSON(t, r, http.MethodPost, "/api/v1/creators", RegisterCreatorRequest{Wallet: "0xcreator1"})
	require.Equal(t, http.StatusCreated, code)

	// 没有已发布内容：显式空操作而非错误
	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/creators/1/reputation/recalculate", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, CodeNoContent, resp.Code)
}
