package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

// withObservedLogger 把全局日志器临时换成可观察的测试日志器
func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	old := L
	L = zap.New(core)
	t.Cleanup(func() { L = old })
	return recorded
}

func TestGormLogger_TraceQuery(t *testing.T) {
	recorded := withObservedLogger(t)

	gl := NewGormLogger(gormlogger.Info)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 3
	}, nil)

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if logs[0].Message != "SQL Query" {
		t.Errorf("message = %q, want %q", logs[0].Message, "SQL Query")
	}
	fields := logs[0].ContextMap()
	if fields["sql"] != "SELECT * FROM orders" {
		t.Errorf("sql = %v, want SELECT * FROM orders", fields["sql"])
	}
	if fields["rows"] != int64(3) {
		t.Errorf("rows = %v, want 3", fields["rows"])
	}
}

func TestGormLogger_TraceError(t *testing.T) {
	recorded := withObservedLogger(t)

	gl := NewGormLogger(gormlogger.Info)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO orders", 0
	}, errors.New("constraint violation"))

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if logs[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %v, want error", logs[0].Level)
	}

	// 未命中记录不作为错误输出
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = 1", 0
	}, gormlogger.ErrRecordNotFound)
	if got := len(recorded.All()); got != 1 {
		t.Errorf("len(logs) = %d, want 1", got)
	}
}

func TestGormLogger_SilentSuppressesAll(t *testing.T) {
	recorded := withObservedLogger(t)

	gl := NewGormLogger(gormlogger.Info).LogMode(gormlogger.Silent)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	if got := len(recorded.All()); got != 0 {
		t.Errorf("len(logs) = %d, want 0", got)
	}
}
