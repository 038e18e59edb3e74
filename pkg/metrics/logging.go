package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// LogFormatter wraps a logrus.Formatter and forwards every entry, including
// its fields, to New Relic. Entries are linked to the transaction in their
// context when there is one and to the application otherwise.
//
// Based off of: https://github.com/newrelic/go-agent/blob/f1942e10f0819e2c854d5d7289eb0dc1c52a00af/v3/integrations/logcontext-v2/nrlogrus/formatter.go
type LogFormatter struct {
	app    *newrelic.Application
	format logrus.Formatter
}

func NewCustomNewRelicLogFormatter(app *newrelic.Application, format logrus.Formatter) LogFormatter {
	return LogFormatter{app: app, format: format}
}

func (f LogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	out, err := f.format.Format(e)
	if err != nil {
		return nil, err
	}
	b := bytes.NewBuffer(bytes.TrimRight(out, "\n"))

	data := newrelic.LogData{
		Severity: e.Level.String(),
		Message:  relayedMessage(e),
	}

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}
	if txn != nil {
		txn.RecordLog(data)
		err = newrelic.EnrichLog(b, newrelic.FromTxn(txn))
	} else {
		f.app.RecordLog(data)
		err = newrelic.EnrichLog(b, newrelic.FromApp(f.app))
	}
	if err != nil {
		return nil, err
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// relayedMessage folds the entry's fields into the message, since New Relic
// only receives the message text.
func relayedMessage(e *logrus.Entry) string {
	if len(e.Data) == 0 {
		return e.Message
	}

	errText := "<nil>"
	fields := make(map[string]interface{}, len(e.Data))
	for k, v := range e.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				errText = fmt.Sprintf("%q", err.Error())
			}
			continue
		}
		fields[k] = v
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return e.Message
	}
	return fmt.Sprintf("message=%q, error=%s, data=%s", e.Message, errText, encoded)
}
