// pkg/vfs/accesslog.go

package vfs

import (
	"fmt"
	"time"

	"AveView/pkg/utils"

	"github.com/sirupsen/logrus"
)

func logit(start time.Time, slow time.Duration, format string, args ...interface{}) {
	used := utils.Now().Sub(start)
	if used < slow && !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	cmd := fmt.Sprintf(format, args...)
	cmd += fmt.Sprintf(" <%.6f>", used.Seconds())
	if used >= slow {
		logger.Infof("slow operation: %s", cmd)
		return
	}
	logger.Debugf("%s", cmd)
}
