package services

import (
	"os"
	"testing"

	"github.com/mics-123/merch-dashboard/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}
