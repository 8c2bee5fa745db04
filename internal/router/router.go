package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/handler"
	"github.com/wayfind/res/internal/logic"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "remint-engine-service",
		})
	})

	burnLogic := logic.NewBurnLogic(db, cfg.Token)
	creatorLogic := logic.NewCreatorLogic(db)
	reputationLogic := logic.NewReputationLogic(db, cfg.Reputation)
	epochLogic := logic.NewEpochLogic(db, cfg.Token)
	rewardLogic := logic.NewRewardLogic(db)

	burnHandler := handler.NewBurnHandler(burnLogic)
	creatorHandler := handler.NewCreatorHandler(creatorLogic, reputationLogic)
	rewardHandler := handler.NewRewardHandler(rewardLogic)
	epochHandler := handler.NewEpochHandler(epochLogic, rewardLogic)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 燃烧账本路由
		burns := v1.Group("/burns")
		{
			burns.POST("", burnHandler.RecordBurn)
			burns.GET("/stats", burnHandler.GetBurnStats)
		}

		// 钱包路由
		wallets := v1.Group("/wallets")
		{
			wallets.GET("/:wallet/burns", burnHandler.GetWalletBurns)
			wallets.GET("/:wallet/credits", burnHandler.GetWalletCredit)
		}

		// 创作者路由
		creators := v1.Group("/creators")
		{
			creators.POST("", creatorHandler.RegisterCreator)
			creators.GET("/:id", creatorHandler.GetCreator)
			creators.POST("/:id/reputation/recalculate", creatorHandler.RecalculateReputation)
			creators.GET("/:id/reputation", creatorHandler.GetReputation)
			creators.POST("/:id/claim", rewardHandler.Claim)
			creators.GET("/:id/rewards", rewardHandler.GetCreatorRewards)
			creators.GET("/:id/rewards/summary", rewardHandler.GetRewardSummary)
		}

		// 周期分配路由
		epochs := v1.Group("/epochs")
		{
			epochs.POST("/run", epochHandler.RunEpoch)
			epochs.GET("", epochHandler.GetEpochs)
			epochs.GET("/:number", epochHandler.GetEpoch)
			epochs.GET("/:number/rewards", epochHandler.GetEpochRewards)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
