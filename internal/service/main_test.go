package service

import (
	"os"
	"testing"

	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
