package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	platformerrors "github.com/jmgilman/repodriller/errors"
	"github.com/jmgilman/repodriller/internal/config"
	"github.com/jmgilman/repodriller/remote"
	"gopkg.in/yaml.v3"
)

// render writes v to w in format. Text output is produced by text.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// renderInfos prints snapshots. A single snapshot is rendered as an object,
// several as a list.
func renderInfos(w io.Writer, format string, infos []remote.Info) error {
	var v any = infos
	if len(infos) == 1 {
		v = infos[0]
	}

	return render(w, format, v, func(w io.Writer) error {
		for i, info := range infos {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "path:         %s\norigin_url:   %s\nfirst_commit: %s\n",
				info.Path, info.OriginURL, info.FirstCommit); err != nil {
				return err
			}
		}
		return nil
	})
}

// renderError reports err on stderr in the configured output format.
func (a *app) renderError(err error) {
	resp := platformerrors.ToJSON(err)
	format := a.v.GetString("output")

	_ = render(a.stderr, format, map[string]*platformerrors.ErrorResponse{"error": resp}, func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "Error: %v\n", err)
		return werr
	})
}

// syncWriter serializes writes from concurrent clones.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
