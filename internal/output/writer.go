package output

import (
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/model"
)

// Writer stores collection results on a filesystem.
type Writer struct {
	fs  afero.Fs
	log logrus.FieldLogger
}

func NewWriter(fs afero.Fs, log logrus.FieldLogger) *Writer {
	return &Writer{fs: fs, log: log}
}

// Write stores every available payload of res under l and returns the paths
// written. Unavailable payloads produce no file, and the directory is only
// created when there is something to put in it. A file that fails to write
// is logged and skipped; only a failure to create the directory is returned.
func (w *Writer) Write(l Layout, res model.CollectionResult) ([]string, error) {
	files := []struct {
		path    string
		payload model.Payload
	}{
		{l.ConfigFile(), res.Config},
		{l.StreamsFile(), res.Streams},
		{l.LogsFile(), res.Logs},
	}

	pending := 0
	for _, f := range files {
		if f.payload.Available() {
			pending++
		}
	}
	if pending == 0 {
		w.log.Warn("Nothing was collected; no output written.")
		return nil, nil
	}

	w.log.Infof("Output path: %s", l.Dir())
	if err := w.fs.MkdirAll(l.Dir(), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", l.Dir())
	}

	var written []string
	for _, f := range files {
		if !f.payload.Available() {
			continue
		}
		name := filepath.Base(f.path)
		if err := afero.WriteFile(w.fs, f.path, f.payload, 0o644); err != nil {
			w.log.WithError(err).Errorf("failed to write %s", name)
			continue
		}
		w.log.Infof("Saved file %s (%s)", name, humanize.Bytes(uint64(len(f.payload))))
		written = append(written, f.path)
	}
	return written, nil
}
