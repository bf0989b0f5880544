package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

// FilesystemOutput writes every message to its own file in a directory.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func messageID(n uint64, res *resty.Response) string {
	path := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		path = res.RawResponse.Request.URL.Path
	}
	name := unsafeFilename.ReplaceAllString(path, "_")
	if len(name) > 80 {
		name = name[:80]
	}
	return fmt.Sprintf("%04d%s.txt", n, name)
}

// Dump writes every response `client` receives (with its request) to `output`.
func Dump(client *resty.Client, output Output) {
	var counter atomic.Uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		output.Write(messageID(counter.Add(1), res), FormatMessage(res))
		return nil
	})
}
