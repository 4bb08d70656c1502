package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/ledger"
)

// LoggingWrapper adapts a handler that returns an error into an
// http.HandlerFunc and logs one entry per request. Domain rejections log at
// info, everything else at error.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req, logData)
		endTimer()

		if err != nil {
			entry := logData.Log().WithError(err)
			switch ledger.KindOf(err) {
			case ledger.KindUnexpected, ledger.KindUnknown:
				entry.Errorf("Handler.%v.Error", loggingName)
			default:
				entry.WithField("kind", ledger.KindOf(err).String()).Infof("Handler.%v.Rejected", loggingName)
			}
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
