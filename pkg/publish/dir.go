package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DirPutter writes objects below Root instead of to a bucket. Keys map to
// slash-separated relative paths; the bucket is ignored.
type DirPutter struct {
	Root string
}

// PutObject writes in.Body to Root/in.Key.
func (d DirPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	dest := filepath.Join(d.Root, filepath.FromSlash(key))
	rel, err := filepath.Rel(d.Root, dest)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("publish: key %q escapes output directory", key)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, in.Body); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &s3.PutObjectOutput{}, nil
}
