package cmd

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"strconv"

	"github.com/ardnew/curly/lang"
	"github.com/ardnew/curly/log"
)

// Data holds the flags that build a template data context.
//
// Data files are merged in order, later files overriding earlier ones.
// Assignments from --set and then --set-bool are applied last.
type Data struct {
	Files   []string `help:"Data file(s), YAML or JSON, or '-' for stdin" name:"data"     placeholder:"FILE"     short:"d"`
	Set     []string `help:"Bind string variable KEY=VALUE"                name:"set"      placeholder:"KEY=VALUE"           sep:"none"`
	SetBool []string `help:"Bind boolean variable KEY=BOOL"                name:"set-bool" placeholder:"KEY=BOOL"            sep:"none"`
}

// load builds the data context. stdinTaken reports whether the template is
// already being read from stdin, in which case a "-" data file is an error.
func (d Data) load(ctx context.Context, stdinTaken bool) (lang.Data, error) {
	files, err := uniqueFiles(d.Files)
	if err != nil {
		return nil, err
	}

	data := make(lang.Data)

	for _, path := range files {
		m, err := readDataFile(ctx, path, stdinTaken)
		if err != nil {
			return nil, err
		}

		maps.Copy(data, m)
	}

	for _, kv := range d.Set {
		key, val, err := lang.ParseAssignment(kv)
		if err != nil {
			return nil, ErrReadData.With(slog.String("flag", "set")).Wrap(err)
		}

		data[key] = lang.String(val)
	}

	for _, kv := range d.SetBool {
		key, val, err := lang.ParseAssignment(kv)
		if err != nil {
			return nil, ErrReadData.With(slog.String("flag", "set-bool")).Wrap(err)
		}

		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, ErrReadData.
				With(slog.String("flag", "set-bool"), slog.String("key", key)).
				Wrap(err)
		}

		data[key] = lang.Bool(b)
	}

	for _, key := range data.Keys() {
		if !lang.ValidIdentifier(key) {
			log.WarnContext(ctx, "data key cannot be referenced by a template",
				slog.String("key", key))
		}
	}

	log.DebugContext(ctx, "data loaded",
		slog.Int("file_count", len(files)),
		slog.Int("key_count", len(data)),
	)

	return data, nil
}

func readDataFile(
	ctx context.Context,
	path string,
	stdinTaken bool,
) (lang.Data, error) {
	var r io.Reader

	if path == stdinSource {
		if stdinTaken {
			return nil, ErrStdinConflict
		}

		r = streamsFrom(ctx).in
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrReadData.With(slog.String("file", path)).Wrap(err)
		}
		defer file.Close()

		r = file
	}

	m, err := lang.DecodeData(r)
	if err != nil {
		return nil, ErrReadData.With(slog.String("file", path)).Wrap(err)
	}

	return m, nil
}

// uniqueFiles returns paths with duplicates removed, keeping the first
// occurrence of each. Two paths are duplicates when they name the same file,
// so symlinks and relative spellings of one file are read once. All
// occurrences of "-" collapse into one.
func uniqueFiles(paths []string) ([]string, error) {
	var (
		unique []string
		seen   []os.FileInfo
		stdin  bool
	)

	for _, path := range paths {
		if path == stdinSource {
			if !stdin {
				unique = append(unique, path)
			}

			stdin = true

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, ErrReadData.With(slog.String("file", path)).Wrap(err)
		}

		dup := false

		for _, prev := range seen {
			if os.SameFile(prev, info) {
				dup = true

				break
			}
		}

		if dup {
			continue
		}

		seen = append(seen, info)
		unique = append(unique, path)
	}

	return unique, nil
}
