package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shopsmart/internal/repository"
	"shopsmart/pkg/logger"
)

// ==================== 邮箱令牌清理任务 ====================

// TokenCleanupTask 定期清理过期的邮箱确认令牌
// 只清理账号仍未激活的陈旧令牌，已激活账号的令牌在确认时即删
type TokenCleanupTask struct {
	emailTokenRepo repository.EmailTokenRepository
	Cron           *cron.Cron

	ttl time.Duration
}

func NewTokenCleanupTask(emailTokenRepo repository.EmailTokenRepository) *TokenCleanupTask {
	return &TokenCleanupTask{
		emailTokenRepo: emailTokenRepo,
		Cron:           cron.New(cron.WithSeconds()), // 支持秒级控制
		ttl:            48 * time.Hour,
	}
}

// Start 启动定时任务
func (t *TokenCleanupTask) Start() error {
	// 每小时整点执行
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	logger.L.Info("email token cleanup task started", zap.Duration("ttl", t.ttl))
	return nil
}

// Stop 停止定时任务
func (t *TokenCleanupTask) Stop() {
	t.Cron.Stop()
}

func (t *TokenCleanupTask) cleanupJob(ctx context.Context) {
	deleted, err := t.emailTokenRepo.DeleteStale(ctx, t.ttl)
	if err != nil {
		logger.L.Error("email token cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.L.Info("stale email tokens removed", zap.Int64("count", deleted))
	}
}
