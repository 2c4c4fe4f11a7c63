package domain

import (
	"os"
	"testing"

	"babayaga/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
