package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/wayfind/res/internal/config"
)

// Client 代币合约链上客户端
type Client struct {
	client        *ethclient.Client
	ContractAddr  common.Address
	startBlock    int64
	confirmations int64
	contractABI   abi.ABI
}

// 代币合约ABI定义（简化版，只含燃烧事件）
const tokenABI = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "wallet", "type": "address"},
			{"indexed": false, "name": "amount", "type": "uint256"}
		],
		"name": "TokensBurned",
		"type": "event"
	}
]`

// BurnLog 已解析的链上燃烧事件
type BurnLog struct {
	TxRef       string // txHash:logIndex，保证同一交易内多次燃烧互不冲突
	Wallet      string
	Amount      *big.Int
	BlockNumber int64
	BurnedAt    time.Time
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析合约地址
	contractAddr := common.HexToAddress(cfg.TokenContract)

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}

	return &Client{
		client:        client,
		ContractAddr:  contractAddr,
		startBlock:    cfg.StartBlock,
		confirmations: cfg.Confirmations,
		contractABI:   parsedABI,
	}, nil
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock(ctx context.Context) (int64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Int64(), nil
}

// StartBlock 获取合约部署区块号
func (c *Client) StartBlock() int64 {
	return c.startBlock
}

// Confirmations 获取确认区块数
func (c *Client) Confirmations() int64 {
	return c.confirmations
}

// FilterBurnLogs 获取指定区块范围内的燃烧事件
func (c *Client) FilterBurnLogs(ctx context.Context, fromBlock, toBlock int64) ([]BurnLog, error) {
	burnedTopic := c.contractABI.Events["TokensBurned"].ID

	query := ethereum.FilterQuery{
		FromBlock: big.NewInt(fromBlock),
		ToBlock:   big.NewInt(toBlock),
		Addresses: []common.Address{c.ContractAddr},
		Topics:    [][]common.Hash{{burnedTopic}},
	}

	logs, err := c.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter burn logs: %w", err)
	}

	// 区块时间按区块号缓存，同一区块的多条日志只取一次区块头
	blockTimes := make(map[uint64]time.Time)

	burns := make([]BurnLog, 0, len(logs))
	for _, log := range logs {
		if len(log.Topics) < 2 {
			continue
		}

		burnedAt, ok := blockTimes[log.BlockNumber]
		if !ok {
			header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(log.BlockNumber))
			if err != nil {
				return nil, fmt.Errorf("failed to get block header %d: %w", log.BlockNumber, err)
			}
			burnedAt = time.Unix(int64(header.Time), 0).UTC()
			blockTimes[log.BlockNumber] = burnedAt
		}

		burns = append(burns, BurnLog{
			TxRef:       fmt.Sprintf("%s:%d", log.TxHash.Hex(), log.Index),
			Wallet:      common.BytesToAddress(log.Topics[1].Bytes()).Hex(),
			Amount:      new(big.Int).SetBytes(log.Data),
			BlockNumber: int64(log.BlockNumber),
			BurnedAt:    burnedAt,
		})
	}

	return burns, nil
}
