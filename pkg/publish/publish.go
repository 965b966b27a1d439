package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cenkalti/backoff/v5"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/kbc-construction/site/pkg/live"
	"github.com/kbc-construction/site/pkg/page"
	"github.com/kbc-construction/site/pkg/render"
	"github.com/kbc-construction/site/pkg/site"
	"github.com/kbc-construction/site/pkg/ui"
)

// IndexKey is the object name of the rendered page.
const IndexKey = "index.html"

// ErrMissingAsset is returned when the content references a file that is
// not in the public directory.
var ErrMissingAsset = errors.New("publish: missing asset")

// ObjectPutter is the subset of *s3.Client used for publishing.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures a Publisher.
type Options struct {
	// Bucket is the target bucket. Required unless the putter ignores it.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// PublicDir holds the files the content references.
	PublicDir string

	// DryRun plans and logs the upload without writing anything.
	DryRun bool

	// Concurrency is the number of parallel uploads (default 4).
	Concurrency int

	// MaxAttempts bounds tries per object (default 3).
	MaxAttempts uint

	// RetryInterval is the first retry delay (default 200ms).
	RetryInterval time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Object is one planned upload.
type Object struct {
	Key          string
	ContentType  string
	CacheControl string
	Size         int64

	// Source is the file on disk, empty for generated objects.
	Source string

	data []byte
}

// Report summarises a publish run.
type Report struct {
	Bucket  string
	Prefix  string
	DryRun  bool
	Objects []Object
}

// TotalBytes is the combined size of every object.
func (r Report) TotalBytes() int64 {
	var n int64
	for _, o := range r.Objects {
		n += o.Size
	}
	return n
}

// Summary is a one-line description of the run.
func (r Report) Summary() string {
	verb := "published"
	if r.DryRun {
		verb = "would publish"
	}
	dest := r.Bucket
	if r.Prefix != "" {
		dest += "/" + strings.Trim(r.Prefix, "/")
	}
	return fmt.Sprintf("%s %d objects (%s) to %s",
		verb, len(r.Objects), humanize.Bytes(uint64(r.TotalBytes())), dest)
}

// Publisher renders the page and uploads it with its assets.
type Publisher struct {
	putter   ObjectPutter
	opts     Options
	renderer *render.Renderer
	logger   *slog.Logger
}

// New creates a Publisher writing through putter.
func New(putter ObjectPutter, opts Options) *Publisher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 200 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		putter:   putter,
		opts:     opts,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   logger.With("component", "publish"),
	}
}

// StaticDocument is the page for static hosting. It has no live endpoint
// meta tag, so the client reveals every region as soon as it loads.
func StaticDocument(c *site.Content) render.PageData {
	doc := page.Document(c, ui.NewMount())
	doc.Scripts = append(doc.Scripts, render.ScriptTag{Src: live.ClientPath, Defer: true})
	return doc
}

// RenderStatic renders StaticDocument to w.
func RenderStatic(w io.Writer, c *site.Content) error {
	return render.NewRenderer(render.RendererConfig{}).RenderPage(w, StaticDocument(c))
}

// Plan lists the objects a publish of c would write: the page, the client
// script and every referenced asset.
func (p *Publisher) Plan(c *site.Content) ([]Object, error) {
	var html bytes.Buffer
	if err := p.renderer.RenderPage(&html, StaticDocument(c)); err != nil {
		return nil, fmt.Errorf("publish: render page: %w", err)
	}

	objects := []Object{
		generated(objectKey(p.opts.Prefix, IndexKey), html.Bytes()),
		generated(objectKey(p.opts.Prefix, live.ClientPath), []byte(live.ClientScript)),
	}

	var missing []error
	for _, asset := range c.Assets() {
		src := filepath.Join(p.opts.PublicDir, filepath.FromSlash(strings.TrimPrefix(asset, "/")))
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingAsset, asset))
			continue
		}
		ct := ContentType(asset)
		objects = append(objects, Object{
			Key:          objectKey(p.opts.Prefix, asset),
			ContentType:  ct,
			CacheControl: CacheControl(ct),
			Size:         info.Size(),
			Source:       src,
		})
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return objects, nil
}

func generated(key string, data []byte) Object {
	ct := ContentType(key)
	return Object{
		Key:          key,
		ContentType:  ct,
		CacheControl: CacheControl(ct),
		Size:         int64(len(data)),
		data:         data,
	}
}

// Publish uploads c. Nothing is written if planning fails; an upload error
// cancels the uploads that have not started.
func (p *Publisher) Publish(ctx context.Context, c *site.Content) (Report, error) {
	objects, err := p.Plan(c)
	if err != nil {
		return Report{}, err
	}
	report := Report{Bucket: p.opts.Bucket, Prefix: p.opts.Prefix, DryRun: p.opts.DryRun, Objects: objects}

	if p.opts.DryRun {
		for _, o := range objects {
			p.logger.Info("dry run", "key", o.Key, "content_type", o.ContentType,
				"cache_control", o.CacheControl, "size", humanize.Bytes(uint64(o.Size)))
		}
		return report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for _, o := range objects {
		g.Go(func() error {
			return p.upload(gctx, o)
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	p.logger.Info(report.Summary())
	return report, nil
}

// upload puts one object, retrying with exponential backoff.
func (p *Publisher) upload(ctx context.Context, o Object) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.opts.RetryInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		body, closeBody, err := o.open()
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		defer closeBody()

		_, err = p.putter.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.opts.Bucket),
			Key:           aws.String(o.Key),
			Body:          body,
			ContentType:   aws.String(o.ContentType),
			CacheControl:  aws.String(o.CacheControl),
			ContentLength: aws.Int64(o.Size),
		})
		if err != nil {
			p.logger.Warn("upload attempt failed", "key", o.Key, "error", err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.opts.MaxAttempts))
	if err != nil {
		return fmt.Errorf("publish: put %s: %w", o.Key, err)
	}

	p.logger.Debug("uploaded", "key", o.Key, "size", humanize.Bytes(uint64(o.Size)))
	return nil
}

// open returns a fresh seekable body for each attempt.
func (o Object) open() (io.ReadSeeker, func(), error) {
	if o.Source == "" {
		return bytes.NewReader(o.data), func() {}, nil
	}
	f, err := os.Open(o.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("publish: open %s: %w", o.Source, err)
	}
	return f, func() { f.Close() }, nil
}
